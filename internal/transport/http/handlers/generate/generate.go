// Package generate implements the HTTP surface over the generation
// pipeline: submitting a run, validating a config without running it,
// and downloading a finished run's output.
package generate

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	generator "synthgen/internal/core/domain/generator"
	run "synthgen/internal/core/domain/run"
	generatorSvc "synthgen/internal/core/services/generator"
	history "synthgen/internal/core/services/history"
	"synthgen/pkg/blobstore"
	"synthgen/pkg/cache"
	apperrors "synthgen/pkg/errors"
	"synthgen/pkg/serialize"
	"synthgen/pkg/ulid"
)

const defaultPreviewRows = 10

var contentTypes = map[string]string{
	"csv":     "text/csv",
	"json":    "application/json",
	"parquet": "application/octet-stream",
}

// Handler serves /api/generate, /api/validate, and /api/download.
type Handler struct {
	history      history.Service
	datasetCache cache.DatasetCache
	blobs        blobstore.Store
	outputDir    string
	logger       *slog.Logger
}

// NewHandler wires the generate handler atop the history service, the
// directory finished run output is written to, and two optional
// collaborators: datasetCache (memoizes output bytes by config digest,
// nil disables it) and blobs (archives finished output to object
// storage, nil disables it).
func NewHandler(historySvc history.Service, datasetCache cache.DatasetCache, blobs blobstore.Store, outputDir string, logger *slog.Logger) *Handler {
	return &Handler{history: historySvc, datasetCache: datasetCache, blobs: blobs, outputDir: outputDir, logger: logger}
}

// generateRequest is the POST /api/generate body: a GeneratorConfig
// plus the output format and how many preview rows to echo back.
type generateRequest struct {
	generator.GeneratorConfig
	Format      string `json:"format"`
	PreviewRows int    `json:"preview_rows"`
}

// generateResponse summarizes a completed run without forcing the
// caller to download the full file just to sanity-check it.
type generateResponse struct {
	RunID       string                       `json:"run_id"`
	RowCount    int                          `json:"row_count"`
	Format      string                       `json:"format"`
	DownloadURL string                       `json:"download_url"`
	Preview     []map[string]any             `json:"preview"`
	Quality     generatorSvc.QualityReport   `json:"quality"`
	Warnings    []apperrors.ReferenceWarning `json:"warnings,omitempty"`
}

// Generate runs the full pipeline for the submitted config and persists
// the output under outputDir, keyed by a new run ID.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}
	if req.PreviewRows <= 0 {
		req.PreviewRows = defaultPreviewRows
	}

	warnings, err := req.GeneratorConfig.Validate()
	if err != nil {
		writeAppError(c, err)
		return
	}

	ctx := c.Request.Context()
	r, err := h.history.Submit(ctx, req.GeneratorConfig, req.Format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit run: " + err.Error()})
		return
	}
	_ = h.history.MarkRunning(ctx, r.ID)

	ds := generatorSvc.Generate(req.GeneratorConfig)
	quality := generatorSvc.BuildQualityReport(ds)

	raw, err := h.serialize(req.Format, ds, cacheKey(req.GeneratorConfig, req.Format))
	if err != nil {
		_ = h.history.MarkFailed(ctx, r.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to serialize output: " + err.Error()})
		return
	}

	outputPath, err := h.writeToDisk(r.ID, req.Format, raw)
	if err != nil {
		_ = h.history.MarkFailed(ctx, r.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write output: " + err.Error()})
		return
	}
	if h.blobs != nil {
		key := r.ID.String() + "." + req.Format
		if err := h.blobs.Upload(ctx, key, raw, contentTypes[req.Format]); err != nil {
			h.logger.Warn("blob archive upload failed", "run_id", r.ID.String(), "error", err)
		}
	}
	if err := h.history.MarkCompleted(ctx, r.ID, ds.Rows(), outputPath); err != nil {
		h.logger.Warn("failed to mark run completed", "run_id", r.ID.String(), "error", err)
	}

	c.JSON(http.StatusOK, generateResponse{
		RunID:       r.ID.String(),
		RowCount:    ds.Rows(),
		Format:      req.Format,
		DownloadURL: "/api/download/" + r.ID.String(),
		Preview:     previewRows(ds, req.PreviewRows),
		Quality:     quality,
		Warnings:    warnings,
	})
}

// Validate checks a config and reports a cheap sizing estimate without
// running any pipeline stage.
func (h *Handler) Validate(c *gin.Context) {
	var cfg generator.GeneratorConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	warnings, err := cfg.Validate()
	if err != nil {
		writeAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"warnings": warnings,
		"estimate": cfg.Estimate(),
	})
}

// Download streams a previously generated run's output file.
func (h *Handler) Download(c *gin.Context) {
	id, err := ulid.Parse(c.Param("runID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	r, err := h.history.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if r.Status != run.StatusCompleted || r.OutputPath == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "run has no completed output"})
		return
	}

	c.FileAttachment(r.OutputPath, filepath.Base(r.OutputPath))
}

// serialize renders ds in the requested format, skipping the encoder
// when an identical (config, format) pair is already sitting in the
// dataset cache.
func (h *Handler) serialize(format string, ds *generator.Dataset, key string) ([]byte, error) {
	if _, ok := contentTypes[format]; !ok {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	ctx := context.Background()
	if h.datasetCache != nil {
		if cached, ok, err := h.datasetCache.Get(ctx, key); err == nil && ok {
			return cached, nil
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "csv":
		err = serialize.WriteCSV(&buf, ds)
	case "json":
		err = serialize.WriteJSON(&buf, ds)
	case "parquet":
		err = serialize.WriteParquet(&buf, ds)
	}
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", format, err)
	}

	raw := buf.Bytes()
	if h.datasetCache != nil {
		if err := h.datasetCache.Set(ctx, key, raw); err != nil {
			h.logger.Warn("dataset cache write failed", "error", err)
		}
	}
	return raw, nil
}

func (h *Handler) writeToDisk(id ulid.ULID, format string, raw []byte) (string, error) {
	if err := os.MkdirAll(h.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(h.outputDir, id.String()+"."+format)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	return path, nil
}

// cacheKey digests a config and output format into a stable dataset
// cache key. Seed is included via the config's own JSON encoding, so
// two requests differing only in seed land in different cache slots.
func cacheKey(cfg generator.GeneratorConfig, format string) string {
	raw, _ := json.Marshal(cfg)
	sum := sha256.Sum256(raw)
	return "synthgen:dataset:" + format + ":" + hex.EncodeToString(sum[:])
}

func previewRows(ds *generator.Dataset, n int) []map[string]any {
	if n > ds.Rows() {
		n = ds.Rows()
	}
	rows := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		row := make(map[string]any, len(ds.Keys)+1)
		row["timestamp"] = ds.Timestamps[i]
		for _, key := range ds.Keys {
			row[key] = ds.Columns[key][i]
		}
		rows[i] = row
	}
	return rows
}

func writeAppError(c *gin.Context, err error) {
	appErr, ok := apperrors.IsAppError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(appErr.StatusCode, gin.H{"error": appErr.Message, "field": appErr.Details})
}
