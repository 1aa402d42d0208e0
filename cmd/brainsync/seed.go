package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/brainsync-backend/internal/app"
	"github.com/yungbote/brainsync-backend/internal/data/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with the demo dataset",
	Long: `Seed migrates the schema, deletes every user, note, tag and quiz, then loads the
bundled demo dataset. Run reindex afterwards to embed the seeded notes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.IsProduction() {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("refusing to seed a production database without --force")
			}
		}
		dbSvc, err := app.OpenDatabase(log, cfg)
		if err != nil {
			return err
		}
		defer dbSvc.Close()
		if err := dbSvc.AutoMigrateAll(); err != nil {
			return err
		}

		data, err := seed.Default()
		if err != nil {
			return err
		}
		report, err := seed.Run(cmd.Context(), dbSvc.DB(), log, data, cfg.BcryptCost)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d tags, %d notes, %d quizzes\n",
			report.Users, report.Tags, report.Notes, report.Quizzes)
		return nil
	},
}

func init() {
	seedCmd.Flags().Bool("force", false, "allow seeding when ENV is production")
}
