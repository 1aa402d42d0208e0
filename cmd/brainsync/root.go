package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/brainsync-backend/internal/app"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

var (
	cfg app.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "brainsync",
	Short:         "BrainSync notes and AI backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode := os.Getenv("LOG_MODE")
		if mode == "" {
			mode = "development"
		}
		l, err := logger.New(mode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		c, err := app.LoadConfig(l)
		if err != nil {
			return err
		}
		if c.LogMode != mode {
			if l2, err := logger.New(c.LogMode); err == nil {
				l.Sync()
				l = l2
			}
		}
		cfg, log = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
	// Running the binary with no subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, reindexCmd, versionCmd)
}
