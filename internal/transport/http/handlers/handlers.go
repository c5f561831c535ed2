// Package handlers aggregates every gin handler group synthgen's HTTP
// transport exposes, mirroring the teacher's single Handlers struct
// that server.go wires routes against.
package handlers

import (
	"log/slog"

	history "synthgen/internal/core/services/history"
	"synthgen/internal/transport/http/handlers/generate"
	"synthgen/internal/transport/http/handlers/health"
	"synthgen/internal/transport/http/handlers/metrics"
	"synthgen/internal/transport/http/handlers/progress"
	"synthgen/internal/transport/http/handlers/templates"
	"synthgen/pkg/blobstore"
	"synthgen/pkg/cache"
)

// Handlers bundles every handler synthgen's server wires routes to.
type Handlers struct {
	Health    *health.Handler
	Metrics   *metrics.Handler
	Generate  *generate.Handler
	Templates *templates.Handler
	Progress  *progress.Handler
}

// NewHandlers builds every handler group from its service/cache/blob
// dependencies and the directory generated output is written to.
// datasetCache and blobStore may be nil, disabling the corresponding
// optimization/archival path in the generate handler.
func NewHandlers(
	historySvc history.Service,
	templateCache *cache.TemplateCache,
	datasetCache cache.DatasetCache,
	blobStore blobstore.Store,
	outputDir string,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		Health:    health.NewHandler(),
		Metrics:   metrics.NewHandler(),
		Generate:  generate.NewHandler(historySvc, datasetCache, blobStore, outputDir, logger),
		Templates: templates.NewHandler(templateCache),
		Progress:  progress.NewHandler(logger),
	}
}
