// Package main is synthgen's HTTP server entry point: it loads
// configuration, wires the application, and serves until an interrupt
// triggers a graceful shutdown.
package main

import (
	"log"

	"synthgen/internal/app"
	"synthgen/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
