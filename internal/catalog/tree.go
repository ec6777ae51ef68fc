package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lrsort/internal/logging"
)

// Tree is the resolved album forest. Roots are ordered for display; every
// album is reachable from exactly one root.
type Tree struct {
	Roots []*Album

	byID map[string]*Album
}

// Tree loads all album records and assembles the forest in a single query.
// Albums whose parent id points at a missing record are promoted to roots
// (and logged); a parent cycle fails the load with ErrCatalogFormat.
func (c *Catalog) Tree(ctx context.Context) (*Tree, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT docId, albumId, name, nameLC, parentId, subtype FROM albums`)
	if err != nil {
		return nil, fmt.Errorf("%w: query albums: %v", ErrCatalogFormat, err)
	}
	defer rows.Close()

	var albums []*Album
	for rows.Next() {
		var (
			album    Album
			name     sql.NullString
			nameLC   sql.NullString
			parentID sql.NullString
			subtype  sql.NullString
		)
		if err := rows.Scan(&album.DocID, &album.ID, &name, &nameLC, &parentID, &subtype); err != nil {
			return nil, fmt.Errorf("%w: scan album row: %v", ErrCatalogFormat, err)
		}
		album.Name = name.String
		album.NameLC = nameLC.String
		album.ParentID = parentID.String
		album.Subtype = subtype.String
		albums = append(albums, &album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read albums: %v", ErrCatalogFormat, err)
	}

	return buildTree(albums, c.logger)
}

func buildTree(albums []*Album, logger interface {
	Warn(msg string, args ...any)
}) (*Tree, error) {
	byID := make(map[string]*Album, len(albums))
	for _, album := range albums {
		if _, dup := byID[album.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate album id %q", ErrCatalogFormat, album.ID)
		}
		byID[album.ID] = album
	}

	tree := &Tree{byID: byID}
	for _, album := range albums {
		if album.ParentID == "" {
			tree.Roots = append(tree.Roots, album)
			continue
		}
		parent, ok := byID[album.ParentID]
		if !ok {
			if logger != nil {
				logger.Warn("album parent missing, promoting to root",
					logging.Args(logging.String("album_id", album.ID), logging.String("parent_id", album.ParentID))...)
			}
			tree.Roots = append(tree.Roots, album)
			continue
		}
		parent.Children = append(parent.Children, album)
	}

	coll := collate.New(language.Und, collate.Numeric)
	sortAlbums := func(list []*Album) {
		sort.SliceStable(list, func(i, j int) bool {
			if cmp := coll.CompareString(list[i].NameLC, list[j].NameLC); cmp != 0 {
				return cmp < 0
			}
			return list[i].ID < list[j].ID
		})
	}
	sortAlbums(tree.Roots)
	for _, album := range albums {
		sortAlbums(album.Children)
	}

	// Every album must be reachable from a root; anything left over sits in
	// a parent cycle.
	reached := 0
	_ = Walk(tree.Roots, func(path []*Album) error {
		reached++
		return nil
	})
	if reached != len(albums) {
		return nil, fmt.Errorf("%w: %d albums unreachable from any root (parent cycle)", ErrCatalogFormat, len(albums)-reached)
	}

	return tree, nil
}

// Find returns the album with the given id or ErrAlbumNotFound.
func (t *Tree) Find(id string) (*Album, error) {
	album, ok := t.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAlbumNotFound, id)
	}
	return album, nil
}

// Len reports the total number of albums in the tree.
func (t *Tree) Len() int {
	return len(t.byID)
}

// Walk visits every album reachable from roots depth-first. fn receives the
// full path from root to the visited album; the slice is reused between
// calls, so callers must copy it to retain it. Returning an error stops the
// walk.
func Walk(roots []*Album, fn func(path []*Album) error) error {
	var path []*Album
	var visit func(album *Album) error
	visit = func(album *Album) error {
		path = append(path, album)
		defer func() { path = path[:len(path)-1] }()

		if err := fn(path); err != nil {
			return err
		}
		for _, child := range album.Children {
			if err := visit(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := visit(root); err != nil {
			return err
		}
	}
	return nil
}
