package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lrsort/internal/config"
	"lrsort/internal/organize"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var rootFlag string
	var naturalFlag bool
	var indexedFlag bool

	cmd := &cobra.Command{
		Use:   "organize <export_path>",
		Short: "Move exported photos into album folders",
		Long: "Moves the flat files in <export_path> into a directory tree mirroring the\n" +
			"catalog's album hierarchy. Files that match no album, or that match more\n" +
			"than one, are left in place and reported.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if naturalFlag && indexedFlag {
				return errors.New("--natural and --indexed are mutually exclusive")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if naturalFlag {
				cfg.Organize.Naming = config.NamingNatural
			}
			if indexedFlag {
				cfg.Organize.Naming = config.NamingIndexed
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			cat, err := ctx.openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			tree, err := cat.Tree(cmd.Context())
			if err != nil {
				return err
			}

			selection := strings.TrimSpace(rootFlag)
			if selection == "" {
				if !stdinIsTerminal() {
					return errors.New("--root is required when not running interactively (run `lrsort list albums` for ids)")
				}
				selection, err = promptAlbumSelection(cmd.InOrStdin(), cmd.OutOrStdout(), tree)
				if err != nil {
					return err
				}
			}

			organizer := organize.New(cfg, logger)
			summary, err := organizer.Organize(cmd.Context(), cat, tree, selection, args[0])
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&rootFlag, "root", "r", "", "Album id to organize, or \"all\" for the whole catalog")
	cmd.Flags().BoolVar(&naturalFlag, "natural", false, "Keep exported file names (collisions get a -2, -3, ... suffix)")
	cmd.Flags().BoolVar(&indexedFlag, "indexed", false, "Prefix a counter preserving album order: 1.aaa.jpg, 2.bbb.jpg, ...")

	return cmd
}

func printSummary(out io.Writer, summary *organize.Summary) {
	fmt.Fprintln(out, renderTable(
		[]string{"Moved", "Unmatched", "Ambiguous", "Failed", "Dirs created"},
		[][]string{{
			fmt.Sprintf("%d", summary.Moved),
			fmt.Sprintf("%d", len(summary.Unmatched)),
			fmt.Sprintf("%d", len(summary.Ambiguous)),
			fmt.Sprintf("%d", len(summary.Failed)),
			fmt.Sprintf("%d", summary.DirsCreated),
		}},
	))

	for _, name := range summary.Unmatched {
		fmt.Fprintf(out, "unmatched: %s (left in place)\n", name)
	}
	for _, name := range summary.Ambiguous {
		fmt.Fprintf(out, "ambiguous: %s matches more than one album (left in place)\n", name)
	}
	for _, failure := range summary.Failed {
		fmt.Fprintf(out, "failed: %s: %v\n", failure.Name, failure.Err)
	}
}
