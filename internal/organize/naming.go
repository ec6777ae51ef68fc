package organize

import (
	"fmt"
	"path/filepath"
	"strings"

	"lrsort/internal/config"
)

// Namer decides the destination filename for each moved file. Next is called
// once per file actually moved into dir; Skip advances ordering state for
// assets whose exported file is absent so numbering stays stable across
// partial exports and re-runs.
type Namer interface {
	Next(dir, filename string) string
	Skip(dir string)
}

// NewNamer returns the namer for a config naming scheme.
func NewNamer(scheme string) Namer {
	if scheme == config.NamingIndexed {
		return &indexedNamer{counters: make(map[string]int)}
	}
	return &naturalNamer{seen: make(map[string]int)}
}

// naturalNamer keeps exported names, appending -2, -3, ... when the same
// name lands in the same directory twice within one run.
type naturalNamer struct {
	seen map[string]int
}

func (n *naturalNamer) Next(dir, filename string) string {
	key := dir + "\x00" + strings.ToLower(filename)
	n.seen[key]++
	if n.seen[key] == 1 {
		return filename
	}
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s-%d%s", base, n.seen[key], ext)
}

func (n *naturalNamer) Skip(string) {}

// indexedNamer prefixes a per-directory counter so files sort in the album's
// catalog order: 1.aaa.jpg, 2.bbb.jpg, ... The counter advances for absent
// assets too.
type indexedNamer struct {
	counters map[string]int
}

func (n *indexedNamer) Next(dir, filename string) string {
	n.counters[dir]++
	return fmt.Sprintf("%d.%s", n.counters[dir], filename)
}

func (n *indexedNamer) Skip(dir string) {
	n.counters[dir]++
}
