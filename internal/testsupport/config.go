// Package testsupport provides fixtures shared by tests: temp configs,
// synthetic Lightroom catalogs, and export-folder helpers.
package testsupport

import (
	"path/filepath"
	"testing"

	"lrsort/internal/config"
)

// NewConfig returns a validated config rooted in a per-test temp directory.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("fixture config invalid: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure fixture directories: %v", err)
	}
	return &cfg
}
