package organize_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lrsort/internal/catalog"
	"lrsort/internal/config"
	"lrsort/internal/logging"
	"lrsort/internal/organize"
	"lrsort/internal/testsupport"
)

// tripsCatalog builds the reference fixture: root "Trips" with child "Italy"
// (a.jpg, b.jpg) and child "Japan" (c.jpg).
func tripsCatalog(t *testing.T) *testsupport.CatalogBuilder {
	t.Helper()

	builder := testsupport.NewCatalog(t, t.TempDir())
	builder.AddAlbum("trips", "", "Trips")
	builder.AddAlbum("italy", "trips", "Italy")
	builder.AddAlbum("japan", "trips", "Japan")
	builder.AddAsset("as-a", "a.jpg", "2019-08-01T09:00:00Z")
	builder.AddAsset("as-b", "b.jpg", "2019-08-01T10:00:00Z")
	builder.AddAsset("as-c", "c.jpg", "2019-08-02T09:00:00Z")
	builder.Link("italy", "as-a", "0001")
	builder.Link("italy", "as-b", "0002")
	builder.Link("japan", "as-c", "0001")
	return builder
}

func openTree(t *testing.T, path string) (*catalog.Catalog, *catalog.Tree) {
	t.Helper()

	cat, err := catalog.Open(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })

	tree, err := cat.Tree(context.Background())
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	return cat, tree
}

func newOrganizer(t *testing.T, cfg *config.Config) *organize.Organizer {
	t.Helper()
	if cfg == nil {
		cfg = testsupport.NewConfig(t)
	}
	return organize.NewWithCaptureTime(cfg, logging.NewNop(), nil)
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, stat err = %v", path, err)
	}
}

func TestOrganizeTripsScenario(t *testing.T) {
	builder := tripsCatalog(t)
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	testsupport.WriteExport(t, exportDir, "a.jpg", "b.jpg", "c.jpg", "d.jpg")

	summary, err := newOrganizer(t, nil).Organize(context.Background(), cat, tree, "trips", exportDir)
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}

	mustExist(t, filepath.Join(exportDir, "Trips", "Italy", "a.jpg"))
	mustExist(t, filepath.Join(exportDir, "Trips", "Italy", "b.jpg"))
	mustExist(t, filepath.Join(exportDir, "Trips", "Japan", "c.jpg"))
	mustExist(t, filepath.Join(exportDir, "d.jpg"))
	mustNotExist(t, filepath.Join(exportDir, "a.jpg"))

	if summary.Moved != 3 {
		t.Fatalf("moved = %d, want 3", summary.Moved)
	}
	if len(summary.Unmatched) != 1 || summary.Unmatched[0] != "d.jpg" {
		t.Fatalf("unmatched = %v", summary.Unmatched)
	}
	if len(summary.Ambiguous) != 0 || len(summary.Failed) != 0 {
		t.Fatalf("unexpected warnings: %+v", summary)
	}

	data, err := os.ReadFile(filepath.Join(exportDir, "Trips", "Italy", "a.jpg"))
	if err != nil || string(data) != "export:a.jpg" {
		t.Fatalf("moved file content = %q, err = %v", data, err)
	}
}

func TestOrganizeSubtreeRelativeToSelection(t *testing.T) {
	builder := tripsCatalog(t)
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	testsupport.WriteExport(t, exportDir, "a.jpg", "b.jpg", "c.jpg")

	summary, err := newOrganizer(t, nil).Organize(context.Background(), cat, tree, "italy", exportDir)
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}

	// Parent album names are not included; the selected album is the top.
	mustExist(t, filepath.Join(exportDir, "Italy", "a.jpg"))
	mustExist(t, filepath.Join(exportDir, "Italy", "b.jpg"))
	mustNotExist(t, filepath.Join(exportDir, "Trips"))

	// c.jpg belongs to Japan, outside the selection.
	mustExist(t, filepath.Join(exportDir, "c.jpg"))
	if len(summary.Unmatched) != 1 || summary.Unmatched[0] != "c.jpg" {
		t.Fatalf("unmatched = %v", summary.Unmatched)
	}
}

func TestOrganizeAmbiguousFileSkipped(t *testing.T) {
	builder := tripsCatalog(t)
	// Data anomaly: a second asset also named a.jpg lives in Japan.
	builder.AddAsset("as-a2", "a.jpg", "2019-08-02T11:00:00Z")
	builder.Link("japan", "as-a2", "0002")
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	testsupport.WriteExport(t, exportDir, "a.jpg", "b.jpg", "c.jpg")

	summary, err := newOrganizer(t, nil).Organize(context.Background(), cat, tree, "trips", exportDir)
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}

	mustExist(t, filepath.Join(exportDir, "a.jpg"))
	mustExist(t, filepath.Join(exportDir, "Trips", "Italy", "b.jpg"))
	mustExist(t, filepath.Join(exportDir, "Trips", "Japan", "c.jpg"))

	if len(summary.Ambiguous) != 1 || summary.Ambiguous[0] != "a.jpg" {
		t.Fatalf("ambiguous = %v", summary.Ambiguous)
	}
	if summary.Moved != 2 {
		t.Fatalf("moved = %d, want 2", summary.Moved)
	}
}

func TestOrganizeCaptureTimeResolvesAmbiguity(t *testing.T) {
	builder := tripsCatalog(t)
	builder.AddAsset("as-a2", "a.jpg", "2019-08-02T11:00:00Z")
	builder.Link("japan", "as-a2", "0002")
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	testsupport.WriteExport(t, exportDir, "a.jpg")

	// The exported file carries the Italy asset's capture time.
	captureTime := func(path string) (time.Time, error) {
		return time.Date(2019, 8, 1, 9, 0, 0, 0, time.UTC), nil
	}
	org := organize.NewWithCaptureTime(testsupport.NewConfig(t), logging.NewNop(), captureTime)

	summary, err := org.Organize(context.Background(), cat, tree, "trips", exportDir)
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}

	mustExist(t, filepath.Join(exportDir, "Trips", "Italy", "a.jpg"))
	if len(summary.Ambiguous) != 0 || summary.Moved != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestOrganizeCaptureTimeStillAmbiguous(t *testing.T) {
	builder := tripsCatalog(t)
	builder.AddAsset("as-a2", "a.jpg", "2019-08-02T11:00:00Z")
	builder.Link("japan", "as-a2", "0002")
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	testsupport.WriteExport(t, exportDir, "a.jpg")

	captureTime := func(path string) (time.Time, error) {
		return time.Time{}, errors.New("no exif block")
	}
	org := organize.NewWithCaptureTime(testsupport.NewConfig(t), logging.NewNop(), captureTime)

	summary, err := org.Organize(context.Background(), cat, tree, "trips", exportDir)
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}

	mustExist(t, filepath.Join(exportDir, "a.jpg"))
	if len(summary.Ambiguous) != 1 {
		t.Fatalf("ambiguous = %v", summary.Ambiguous)
	}
}

func TestOrganizeIdempotentRerun(t *testing.T) {
	builder := tripsCatalog(t)
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	testsupport.WriteExport(t, exportDir, "a.jpg", "b.jpg", "c.jpg", "d.jpg")

	org := newOrganizer(t, nil)
	ctx := context.Background()

	first, err := org.Organize(ctx, cat, tree, "trips", exportDir)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if first.Moved != 3 {
		t.Fatalf("first run moved = %d", first.Moved)
	}

	second, err := org.Organize(ctx, cat, tree, "trips", exportDir)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if second.Moved != 0 {
		t.Fatalf("second run moved = %d, want 0", second.Moved)
	}
	if len(second.Failed) != 0 {
		t.Fatalf("second run failures: %+v", second.Failed)
	}
	// Already-moved files are simply absent; d.jpg is still unmatched.
	if len(second.Unmatched) != 1 || second.Unmatched[0] != "d.jpg" {
		t.Fatalf("second run unmatched = %v", second.Unmatched)
	}
	mustExist(t, filepath.Join(exportDir, "Trips", "Italy", "a.jpg"))
}

func TestOrganizeEmptyAlbumGetsDirectory(t *testing.T) {
	builder := tripsCatalog(t)
	builder.AddAlbum("iceland", "trips", "Iceland")
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	testsupport.WriteExport(t, exportDir, "a.jpg")

	summary, err := newOrganizer(t, nil).Organize(context.Background(), cat, tree, "trips", exportDir)
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(exportDir, "Trips", "Iceland"))
	if err != nil || !info.IsDir() {
		t.Fatalf("empty album directory missing: %v", err)
	}
	if summary.DirsCreated != 4 {
		t.Fatalf("dirs created = %d, want 4", summary.DirsCreated)
	}
}

func TestOrganizeSanitizedNameCollision(t *testing.T) {
	builder := testsupport.NewCatalog(t, t.TempDir())
	builder.AddAlbum("root", "", "Trips")
	builder.AddAlbum("al1", "root", "Rome: Day")
	builder.AddAlbum("al2", "root", "Rome- Day")
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()

	summary, err := newOrganizer(t, nil).Organize(context.Background(), cat, tree, "root", exportDir)
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}
	if summary.DirsCreated != 3 {
		t.Fatalf("dirs created = %d, want 3", summary.DirsCreated)
	}

	first := filepath.Join(exportDir, "Trips", "Rome- Day")
	mustExist(t, first)

	// The later sibling keeps its identity via the album id suffix.
	var suffixed string
	for _, id := range []string{"al1", "al2"} {
		candidate := filepath.Join(exportDir, "Trips", "Rome- Day-"+id)
		if _, err := os.Stat(candidate); err == nil {
			suffixed = candidate
		}
	}
	if suffixed == "" {
		t.Fatal("expected a sibling directory with album-id suffix")
	}
}

func TestOrganizeIndexedNaming(t *testing.T) {
	builder := tripsCatalog(t)
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	// b.jpg is missing from the export; its index is still reserved.
	testsupport.WriteExport(t, exportDir, "a.jpg", "c.jpg")

	cfg := testsupport.NewConfig(t)
	cfg.Organize.Naming = config.NamingIndexed

	summary, err := newOrganizer(t, cfg).Organize(context.Background(), cat, tree, "trips", exportDir)
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}
	if summary.Moved != 2 {
		t.Fatalf("moved = %d", summary.Moved)
	}

	mustExist(t, filepath.Join(exportDir, "Trips", "Italy", "1.a.jpg"))
	mustExist(t, filepath.Join(exportDir, "Trips", "Japan", "1.c.jpg"))
}

func TestOrganizeDestinationCollisionIsPerFileFailure(t *testing.T) {
	builder := tripsCatalog(t)
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	testsupport.WriteExport(t, exportDir, "a.jpg", "b.jpg")
	// Simulate a leftover file occupying a.jpg's destination.
	testsupport.WriteFile(t, filepath.Join(exportDir, "Trips", "Italy", "a.jpg"), "old")

	summary, err := newOrganizer(t, nil).Organize(context.Background(), cat, tree, "trips", exportDir)
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}

	if len(summary.Failed) != 1 || summary.Failed[0].Name != "a.jpg" {
		t.Fatalf("failed = %+v", summary.Failed)
	}
	// The failure does not abort the run.
	if summary.Moved != 1 {
		t.Fatalf("moved = %d, want 1", summary.Moved)
	}
	mustExist(t, filepath.Join(exportDir, "a.jpg"))
	mustExist(t, filepath.Join(exportDir, "Trips", "Italy", "b.jpg"))

	data, err := os.ReadFile(filepath.Join(exportDir, "Trips", "Italy", "a.jpg"))
	if err != nil || string(data) != "old" {
		t.Fatalf("destination was clobbered: %q, %v", data, err)
	}
}

func TestOrganizeUnknownSelection(t *testing.T) {
	builder := tripsCatalog(t)
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	testsupport.WriteExport(t, exportDir, "a.jpg")

	_, err := newOrganizer(t, nil).Organize(context.Background(), cat, tree, "nope", exportDir)
	if !errors.Is(err, catalog.ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
	// No mutation happened.
	mustExist(t, filepath.Join(exportDir, "a.jpg"))
}

func TestOrganizeMissingExportDir(t *testing.T) {
	builder := tripsCatalog(t)
	cat, tree := openTree(t, builder.Path())

	_, err := newOrganizer(t, nil).Organize(context.Background(), cat, tree, "trips", filepath.Join(t.TempDir(), "gone"))
	if err == nil {
		t.Fatal("expected error for missing export directory")
	}
}

func TestOrganizeAllSelection(t *testing.T) {
	builder := tripsCatalog(t)
	cat, tree := openTree(t, builder.Path())

	exportDir := t.TempDir()
	testsupport.WriteExport(t, exportDir, "a.jpg", "c.jpg")

	summary, err := newOrganizer(t, nil).Organize(context.Background(), cat, tree, organize.SelectionAll, exportDir)
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}
	if summary.Moved != 2 {
		t.Fatalf("moved = %d", summary.Moved)
	}
	mustExist(t, filepath.Join(exportDir, "Trips", "Italy", "a.jpg"))
	mustExist(t, filepath.Join(exportDir, "Trips", "Japan", "c.jpg"))
}
