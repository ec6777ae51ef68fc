package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lrsort/internal/catalog"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Catalog listings",
	}

	listCmd.AddCommand(newListAlbumsCommand(ctx))

	return listCmd
}

func newListAlbumsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "albums",
		Short: "Print the album tree with ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			tree, err := cat.Tree(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tree.Roots) == 0 {
				fmt.Fprintln(out, "No albums found in catalog")
				return nil
			}

			var rows [][]string
			_ = catalog.Walk(tree.Roots, func(path []*catalog.Album) error {
				album := path[len(path)-1]
				indent := strings.Repeat("  ", len(path)-1)
				rows = append(rows, []string{album.ID, indent + album.Name})
				return nil
			})

			fmt.Fprintln(out, renderTable([]string{"ID", "Album"}, rows))
			return nil
		},
	}
}
