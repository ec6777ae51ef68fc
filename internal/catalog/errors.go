package catalog

import "errors"

// ErrCatalogFormat indicates the catalog database is missing, unreadable, or
// does not match the expected schema. It is fatal and always surfaces before
// any file operation.
var ErrCatalogFormat = errors.New("catalog format error")

// ErrAlbumNotFound indicates a requested album id does not exist in the tree.
var ErrAlbumNotFound = errors.New("album not found")
