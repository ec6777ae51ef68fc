package organize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"lrsort/internal/catalog"
	"lrsort/internal/config"
	"lrsort/internal/fileutil"
	"lrsort/internal/logging"
	"lrsort/internal/textutil"
)

// SelectionAll selects every root album in the catalog.
const SelectionAll = "all"

// lockFileName guards an export directory against concurrent runs.
const lockFileName = ".lrsort.lock"

// Organizer plans and executes one organize run.
type Organizer struct {
	cfg         *config.Config
	logger      *slog.Logger
	captureTime CaptureTimeFunc
}

// New constructs an Organizer with EXIF-based capture-time disambiguation
// wired in when the config enables it.
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	var captureTime CaptureTimeFunc
	if cfg == nil || cfg.Organize.ExifDisambiguation {
		captureTime = exifCaptureTime
	}
	return NewWithCaptureTime(cfg, logger, captureTime)
}

// NewWithCaptureTime allows injecting the capture-time reader (used in tests).
// A nil captureTime disables disambiguation entirely.
func NewWithCaptureTime(cfg *config.Config, logger *slog.Logger, captureTime CaptureTimeFunc) *Organizer {
	return &Organizer{
		cfg:         cfg,
		logger:      logging.NewComponentLogger(logger, "organizer"),
		captureTime: captureTime,
	}
}

// albumEntry is one album in the selected subtree with its resolved
// destination directory and ordered assets.
type albumEntry struct {
	album  *catalog.Album
	dir    string
	assets []catalog.Asset
}

// candidate pairs a filename stem with one asset in one album.
type candidate struct {
	entry int
	asset catalog.Asset
}

// Organize moves the flat files under exportDir into directories mirroring
// the selected subtree. selection is an album id, or "all"/empty for the
// whole catalog. The catalog is only read; all mutations happen under
// exportDir. Warnings are collected in the summary, never returned as
// errors.
func (o *Organizer) Organize(ctx context.Context, cat *catalog.Catalog, tree *catalog.Tree, selection, exportDir string) (*Summary, error) {
	exportDir, err := filepath.Abs(exportDir)
	if err != nil {
		return nil, fmt.Errorf("resolve export path: %w", err)
	}
	info, err := os.Stat(exportDir)
	if err != nil {
		return nil, fmt.Errorf("export path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("export path %s is not a directory", exportDir)
	}

	roots, err := selectRoots(tree, selection)
	if err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(exportDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another organize run is active in %s", exportDir)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	entries, err := o.collectAlbums(ctx, cat, roots, exportDir)
	if err != nil {
		return nil, err
	}

	flat, err := listFlatFiles(exportDir)
	if err != nil {
		return nil, fmt.Errorf("scan export directory: %w", err)
	}

	candidates := make(map[string][]candidate)
	for i, entry := range entries {
		for _, asset := range entry.assets {
			stem := textutil.Stem(asset.Filename)
			if stem == "" {
				continue
			}
			candidates[stem] = append(candidates[stem], candidate{entry: i, asset: asset})
		}
	}

	summary := &Summary{}

	// entry index -> asset id -> flat filenames claimed by that asset.
	assigned := make(map[int]map[string][]string)
	claim := func(entryIdx int, assetID, filename string) {
		byAsset := assigned[entryIdx]
		if byAsset == nil {
			byAsset = make(map[string][]string)
			assigned[entryIdx] = byAsset
		}
		byAsset[assetID] = append(byAsset[assetID], filename)
	}

	for _, filename := range flat {
		stem := textutil.Stem(filename)
		list := candidates[stem]
		if len(list) == 0 {
			summary.Unmatched = append(summary.Unmatched, filename)
			continue
		}
		if entryIdx, unique := singleEntry(list); unique {
			claim(entryIdx, list[0].asset.ID, filename)
			continue
		}
		if entryIdx, asset, ok := o.resolveByCaptureTime(filepath.Join(exportDir, filename), list); ok {
			o.logger.Info("resolved ambiguous file via capture date",
				logging.Args(
					logging.String("file", filename),
					logging.String("album_id", entries[entryIdx].album.ID),
				)...)
			claim(entryIdx, asset.ID, filename)
			continue
		}
		summary.Ambiguous = append(summary.Ambiguous, filename)
	}

	// Every album in the selection gets its directory, even when no files
	// will land in it.
	for _, entry := range entries {
		created, err := ensureDir(entry.dir)
		if err != nil {
			summary.Failed = append(summary.Failed, MoveFailure{Name: entry.dir, Err: err})
			continue
		}
		if created {
			summary.DirsCreated++
		}
	}

	scheme := ""
	if o.cfg != nil {
		scheme = o.cfg.Organize.Naming
	}
	namer := NewNamer(scheme)

	for i, entry := range entries {
		byAsset := assigned[i]
		for _, asset := range entry.assets {
			files := byAsset[asset.ID]
			if len(files) == 0 {
				namer.Skip(entry.dir)
				continue
			}
			sort.Strings(files)
			for _, filename := range files {
				src := filepath.Join(exportDir, filename)
				dst := filepath.Join(entry.dir, namer.Next(entry.dir, filename))
				if err := fileutil.MoveFile(src, dst); err != nil {
					summary.Failed = append(summary.Failed, MoveFailure{Name: filename, Err: err})
					o.logger.Warn("move failed",
						logging.Args(logging.String("file", filename), logging.Error(err))...)
					continue
				}
				summary.Moved++
				o.logger.Debug("moved file",
					logging.Args(logging.String("from", src), logging.String("to", dst))...)
			}
		}
	}

	sort.Strings(summary.Unmatched)
	sort.Strings(summary.Ambiguous)

	o.logger.Info("organize complete",
		logging.Args(
			logging.Int("moved", summary.Moved),
			logging.Int("unmatched", len(summary.Unmatched)),
			logging.Int("ambiguous", len(summary.Ambiguous)),
			logging.Int("failed", len(summary.Failed)),
			logging.Int("dirs_created", summary.DirsCreated),
		)...)

	return summary, nil
}

// collectAlbums walks the selected subtree depth-first, resolving each
// album's destination directory and asset list. Sibling albums whose
// sanitized names collide get the album id appended.
func (o *Organizer) collectAlbums(ctx context.Context, cat *catalog.Catalog, roots []*catalog.Album, exportDir string) ([]albumEntry, error) {
	var entries []albumEntry
	dirs := make(map[string]string)
	taken := make(map[string]string)

	err := catalog.Walk(roots, func(path []*catalog.Album) error {
		album := path[len(path)-1]
		parentDir := exportDir
		if len(path) > 1 {
			parentDir = dirs[path[len(path)-2].ID]
		}

		name := textutil.SanitizeDirName(album.Name)
		key := parentDir + "\x00" + strings.ToLower(name)
		if owner, ok := taken[key]; ok && owner != album.ID {
			name = name + "-" + album.ID
		} else {
			taken[key] = album.ID
		}

		dir := filepath.Join(parentDir, name)
		dirs[album.ID] = dir

		assets, err := cat.Assets(ctx, album.ID)
		if err != nil {
			return err
		}
		entries = append(entries, albumEntry{album: album, dir: dir, assets: assets})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// resolveByCaptureTime attempts to pin an ambiguous file to exactly one album
// by comparing its EXIF capture time against the candidates' catalog capture
// dates.
func (o *Organizer) resolveByCaptureTime(path string, list []candidate) (int, catalog.Asset, bool) {
	if o.captureTime == nil {
		return 0, catalog.Asset{}, false
	}
	taken, err := o.captureTime(path)
	if err != nil {
		o.logger.Debug("capture time unavailable",
			logging.Args(logging.String("file", filepath.Base(path)), logging.Error(err))...)
		return 0, catalog.Asset{}, false
	}

	matchedEntry := -1
	var matchedAsset catalog.Asset
	for _, c := range list {
		captured, ok := parseCaptureDate(c.asset.CaptureDate)
		if !ok || !sameCaptureInstant(taken, captured) {
			continue
		}
		if matchedEntry >= 0 && matchedEntry != c.entry {
			return 0, catalog.Asset{}, false
		}
		matchedEntry = c.entry
		matchedAsset = c.asset
	}
	if matchedEntry < 0 {
		return 0, catalog.Asset{}, false
	}
	return matchedEntry, matchedAsset, true
}

func selectRoots(tree *catalog.Tree, selection string) ([]*catalog.Album, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" || selection == SelectionAll {
		return tree.Roots, nil
	}
	album, err := tree.Find(selection)
	if err != nil {
		return nil, err
	}
	return []*catalog.Album{album}, nil
}

// singleEntry reports whether all candidates belong to the same album.
func singleEntry(list []candidate) (int, bool) {
	entry := list[0].entry
	for _, c := range list[1:] {
		if c.entry != entry {
			return 0, false
		}
	}
	return entry, true
}

// listFlatFiles returns the non-hidden regular files at the top level of dir,
// sorted by name. Directories (including album directories from earlier
// runs) and dotfiles are ignored.
func listFlatFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range dirEntries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

func ensureDir(dir string) (bool, error) {
	if info, err := os.Stat(dir); err == nil {
		if info.IsDir() {
			return false, nil
		}
		return false, fmt.Errorf("destination %s exists and is not a directory", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	return true, nil
}
