package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/brainsync-backend/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	log.Info("BrainSync server starting", "port", cfg.Port, "env", cfg.Env, "version", app.Version)
	if err := application.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("BrainSync server stopped")
	return nil
}
