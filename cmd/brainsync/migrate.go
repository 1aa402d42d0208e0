package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/brainsync-backend/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbSvc, err := app.OpenDatabase(log, cfg)
		if err != nil {
			return err
		}
		defer dbSvc.Close()
		if err := dbSvc.AutoMigrateAll(); err != nil {
			return err
		}
		log.Info("Migration completed", "driver", dbSvc.Driver())
		return nil
	},
}
