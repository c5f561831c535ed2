package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"synthgen/internal/app"
	"synthgen/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Args:  cobra.NoArgs,
	Short: "Run the HTTP and WebSocket server",
	Long:  `Loads the server configuration (env vars and an optional ./configs/config.yaml, independent of --config) and serves /api and /ws/progress until interrupted.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load server configuration: %w", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	return a.Run()
}
