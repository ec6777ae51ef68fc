package testsupport

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CatalogBuilder writes a synthetic Lightroom catalog database for tests.
// The schema mirrors the subset of Managed Catalog.wfindex the reader
// depends on.
type CatalogBuilder struct {
	t    testing.TB
	db   *sql.DB
	path string

	docID int64
}

// NewCatalog creates an empty catalog database under dir and returns a
// builder for populating it. The database is closed automatically at test
// cleanup.
func NewCatalog(t testing.TB, dir string) *CatalogBuilder {
	t.Helper()

	path := filepath.Join(dir, "Managed Catalog.wfindex")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture catalog: %v", err)
	}

	schema := []string{
		`CREATE TABLE albums (
            docId INTEGER PRIMARY KEY,
            albumId TEXT UNIQUE NOT NULL,
            name TEXT,
            nameLC TEXT,
            parentId TEXT,
            subtype TEXT
        )`,
		`CREATE TABLE assets (
            docId INTEGER PRIMARY KEY,
            assetId TEXT UNIQUE NOT NULL,
            captureDate TEXT,
            filename TEXT,
            filenameLC TEXT
        )`,
		`CREATE TABLE album_asset_v2 (
            docId INTEGER PRIMARY KEY,
            assetId TEXT NOT NULL,
            albumId TEXT NOT NULL,
            sortOrder TEXT
        )`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create fixture schema: %v", err)
		}
	}

	t.Cleanup(func() { _ = db.Close() })
	return &CatalogBuilder{t: t, db: db, path: path}
}

// Path returns the catalog database file location.
func (b *CatalogBuilder) Path() string {
	return b.path
}

// AddAlbum inserts an album. parentID may be empty for roots.
func (b *CatalogBuilder) AddAlbum(albumID, parentID, name string) {
	b.t.Helper()

	b.docID++
	var parent any
	if parentID != "" {
		parent = parentID
	}
	_, err := b.db.Exec(
		`INSERT INTO albums (docId, albumId, name, nameLC, parentId, subtype) VALUES (?, ?, ?, lower(?), ?, 'collection')`,
		b.docID, albumID, name, name, parent)
	if err != nil {
		b.t.Fatalf("insert album %s: %v", albumID, err)
	}
}

// AddAsset inserts an asset record.
func (b *CatalogBuilder) AddAsset(assetID, filename, captureDate string) {
	b.t.Helper()

	b.docID++
	_, err := b.db.Exec(
		`INSERT INTO assets (docId, assetId, captureDate, filename, filenameLC) VALUES (?, ?, ?, ?, lower(?))`,
		b.docID, assetID, captureDate, filename, filename)
	if err != nil {
		b.t.Fatalf("insert asset %s: %v", assetID, err)
	}
}

// Link places an asset in an album at the given sort position.
func (b *CatalogBuilder) Link(albumID, assetID, sortOrder string) {
	b.t.Helper()

	b.docID++
	_, err := b.db.Exec(
		`INSERT INTO album_asset_v2 (docId, assetId, albumId, sortOrder) VALUES (?, ?, ?, ?)`,
		b.docID, assetID, albumID, sortOrder)
	if err != nil {
		b.t.Fatalf("link asset %s to album %s: %v", assetID, albumID, err)
	}
}
