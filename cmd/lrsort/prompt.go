package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lrsort/internal/catalog"
	"lrsort/internal/organize"
)

// promptAlbumSelection prints the numbered album tree and reads the user's
// choice. 0 (the default) selects everything.
func promptAlbumSelection(in io.Reader, out io.Writer, tree *catalog.Tree) (string, error) {
	fmt.Fprintln(out, "Folders and albums:")
	fmt.Fprintf(out, "%5d. (all)\n", 0)

	ids := []string{organize.SelectionAll}
	_ = catalog.Walk(tree.Roots, func(path []*catalog.Album) error {
		album := path[len(path)-1]
		ids = append(ids, album.ID)
		fmt.Fprintf(out, "%5d. %s%s\n", len(ids)-1, strings.Repeat("  ", len(path)), album.Name)
		return nil
	})

	choice, err := promptIndex(in, out, "Which album/folder did you export from Lightroom? (Default: 0 = all)", len(ids)-1)
	if err != nil {
		return "", err
	}
	return ids[choice], nil
}

// promptCatalogSelection asks the user to pick one of several discovered
// catalog databases.
func promptCatalogSelection(in io.Reader, out io.Writer, catalogs []string) (string, error) {
	fmt.Fprintf(out, "Found %d catalogs:\n", len(catalogs))
	for i, path := range catalogs {
		fmt.Fprintf(out, "%5d. %s\n", i+1, path)
	}
	choice, err := promptIndex(in, out, "Select your catalog (Default: 1)", len(catalogs))
	if err != nil {
		return "", err
	}
	if choice == 0 {
		choice = 1
	}
	return catalogs[choice-1], nil
}

func promptIndex(in io.Reader, out io.Writer, prompt string, max int) (int, error) {
	fmt.Fprintf(out, "%s: ", prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return 0, fmt.Errorf("read selection: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 0 || n > max {
		return 0, fmt.Errorf("invalid selection %q", line)
	}
	return n, nil
}
