package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/shikabom/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// version needs no config or database.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shikabom %s\n", version.Info())
	},
}
