package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Assets returns the photo and video records linked to the given album,
// ordered the way Lightroom presents them: by the album's manual sort order,
// then capture date, then filename. The query re-runs on every call, so the
// sequence is restartable.
func (c *Catalog) Assets(ctx context.Context, albumID string) ([]Asset, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT a.assetId, a.filename, a.filenameLC, a.captureDate
           FROM assets a
           JOIN album_asset_v2 aa ON aa.assetId = a.assetId
          WHERE aa.albumId = ?
          ORDER BY aa.sortOrder, a.captureDate, a.filenameLC`,
		albumID)
	if err != nil {
		return nil, fmt.Errorf("%w: query assets of album %q: %v", ErrCatalogFormat, albumID, err)
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		var (
			asset       Asset
			filename    sql.NullString
			filenameLC  sql.NullString
			captureDate sql.NullString
		)
		if err := rows.Scan(&asset.ID, &filename, &filenameLC, &captureDate); err != nil {
			return nil, fmt.Errorf("%w: scan asset row: %v", ErrCatalogFormat, err)
		}
		asset.Filename = filename.String
		asset.FilenameLC = filenameLC.String
		asset.CaptureDate = captureDate.String
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read assets of album %q: %v", ErrCatalogFormat, albumID, err)
	}
	return assets, nil
}
