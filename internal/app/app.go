// Package app wires synthgen's full dependency graph — database,
// caches, blob storage, services, HTTP handlers — once, so the
// standalone server binary and the "synthgen serve" CLI subcommand
// don't each duplicate the construction order.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"synthgen/internal/config"
	"synthgen/internal/core/services/history"
	"synthgen/internal/infrastructure/database"
	historyRepo "synthgen/internal/infrastructure/repository/run"
	transporthttp "synthgen/internal/transport/http"
	"synthgen/internal/transport/http/handlers"
	"synthgen/pkg/blobstore"
	"synthgen/pkg/cache"
	"synthgen/pkg/logging"
)

// App bundles synthgen's HTTP server and the resources it owns, so
// Shutdown can release them in the right order.
type App struct {
	config *config.Config
	logger *slog.Logger
	db     *database.DB
	cache  cache.DatasetCache
	server *transporthttp.Server
}

// New builds the full dependency graph from cfg: database connection,
// repositories, services, caches, optional blob store, handlers, and
// the HTTP server, without starting anything yet.
func New(cfg *config.Config) (*App, error) {
	logger := logging.NewLoggerWithFormat(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)

	db, err := database.NewDB(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	runRepository := historyRepo.NewRunRepository(db.Gorm)
	historySvc := history.NewService(runRepository)

	templateCache, err := cache.NewTemplateCache(cfg.Generation.TemplateCacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("build template cache: %w", err)
	}

	datasetCache, err := cache.NewRedisDatasetCache(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect redis dataset cache: %w", err)
	}

	blobStore, err := blobstore.NewS3Store(context.Background(), cfg.BlobStorage, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("build blob store: %w", err)
	}

	h := handlers.NewHandlers(historySvc, templateCache, datasetCache, blobStore, cfg.Generation.DefaultOutputDir, logger)
	server := transporthttp.NewServer(cfg, logger, h)

	return &App{config: cfg, logger: logger, db: db, cache: datasetCache, server: server}, nil
}

// Run starts the HTTP server in the background and blocks until an
// interrupt or termination signal triggers a graceful shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server forced to shutdown", "error", err)
	}
	return a.Close()
}

// Close releases resources Run does not own past shutdown: the
// database connection and, if configured, the dataset cache.
func (a *App) Close() error {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("dataset cache close failed", "error", err)
		}
	}
	return a.db.Close()
}
