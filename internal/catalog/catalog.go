package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"lrsort/internal/logging"
)

// CatalogFileName is the database file Lightroom CC keeps per catalog.
const CatalogFileName = "Managed Catalog.wfindex"

// requiredTables maps each table the reader depends on to the columns it
// queries. Open verifies all of them before handing out a Catalog.
var requiredTables = map[string][]string{
	"albums":         {"docId", "albumId", "name", "nameLC", "parentId", "subtype"},
	"assets":         {"docId", "assetId", "captureDate", "filename", "filenameLC"},
	"album_asset_v2": {"assetId", "albumId", "sortOrder"},
}

// Catalog is a read-only handle on a Lightroom catalog database.
type Catalog struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open connects to the catalog database in read-only mode and verifies the
// schema. Schema or access problems are reported as ErrCatalogFormat.
func Open(path string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: catalog database not found at %s", ErrCatalogFormat, path)
		}
		return nil, fmt.Errorf("%w: stat catalog %s: %v", ErrCatalogFormat, path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open catalog database: %v", ErrCatalogFormat, err)
	}

	// Pragmas apply per connection; keep the pool at one so they stick.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA query_only = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: apply pragma %q: %v", ErrCatalogFormat, pragma, execErr)
		}
	}

	cat := &Catalog{db: db, path: path, logger: logging.NewComponentLogger(logger, "catalog")}
	if err := cat.checkSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cat, nil
}

// Close releases the underlying database connection.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the catalog database location.
func (c *Catalog) Path() string {
	return c.path
}

func (c *Catalog) checkSchema(ctx context.Context) error {
	for table, columns := range requiredTables {
		var exists int
		err := c.db.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("%w: inspect schema: %v", ErrCatalogFormat, err)
		}
		if exists == 0 {
			return fmt.Errorf("%w: missing table %q (is %s a Lightroom catalog?)", ErrCatalogFormat, table, c.path)
		}

		present, err := c.tableColumns(ctx, table)
		if err != nil {
			return err
		}
		for _, column := range columns {
			if _, ok := present[column]; !ok {
				return fmt.Errorf("%w: table %q is missing column %q (unsupported catalog version?)", ErrCatalogFormat, table, column)
			}
		}
	}
	return nil
}

func (c *Catalog) tableColumns(ctx context.Context, table string) (map[string]struct{}, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("%w: read columns of %q: %v", ErrCatalogFormat, table, err)
	}
	defer rows.Close()

	columns := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan column name: %v", ErrCatalogFormat, err)
		}
		columns[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read columns of %q: %v", ErrCatalogFormat, table, err)
	}
	return columns, nil
}
