package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/brainsync-backend/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	// Skips config loading so it works without any environment.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	PersistentPostRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "brainsync %s\n", app.Version)
	},
}
