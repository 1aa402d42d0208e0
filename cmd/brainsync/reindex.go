package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/brainsync-backend/internal/app"
)

var (
	reindexLimit       int
	reindexConcurrency int
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Embed notes that have no embedding yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(cmd.Context(), log, cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		report, err := application.Services.Notes.Reindex(cmd.Context(), reindexLimit, reindexConcurrency)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "scanned %d, embedded %d, failed %d\n",
			report.Scanned, report.Embedded, report.Failed)
		if report.Failed > 0 {
			return fmt.Errorf("%d notes failed to embed", report.Failed)
		}
		return nil
	},
}

func init() {
	reindexCmd.Flags().IntVar(&reindexLimit, "limit", 0, "maximum notes to process (0 for all)")
	reindexCmd.Flags().IntVar(&reindexConcurrency, "concurrency", 4, "parallel embedding requests")
}
