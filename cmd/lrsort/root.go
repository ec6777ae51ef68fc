package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var libraryFlag string

	ctx := newCommandContext(&configFlag, &libraryFlag)

	rootCmd := &cobra.Command{
		Use:           "lrsort",
		Short:         "Organize Lightroom exports into album folders",
		Long: "lrsort reads a Lightroom CC catalog and moves a flat folder of exported\n" +
			"photos into a directory tree mirroring the catalog's folders and albums.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&libraryFlag, "library", "l", "", "Path to the Lightroom catalog (Managed Catalog.wfindex) or its folder")

	rootCmd.AddCommand(newOrganizeCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
