// Package history implements the business logic around GenerationRun
// records: creating a run, tracking it through the pipeline, and
// answering queries about past runs.
package history

import (
	"context"
	"fmt"
	"time"

	generator "synthgen/internal/core/domain/generator"
	run "synthgen/internal/core/domain/run"
	"synthgen/pkg/ulid"
)

// Service is the use-case surface the HTTP transport drives.
type Service interface {
	Submit(ctx context.Context, cfg generator.GeneratorConfig, outputFormat string) (*run.GenerationRun, error)
	MarkRunning(ctx context.Context, id ulid.ULID) error
	MarkCompleted(ctx context.Context, id ulid.ULID, rowCount int, outputPath string) error
	MarkFailed(ctx context.Context, id ulid.ULID, cause error) error
	Get(ctx context.Context, id ulid.ULID) (*run.GenerationRun, error)
	List(ctx context.Context, filters run.ListFilters) ([]*run.GenerationRun, int64, error)
}

type service struct {
	repo run.Repository
}

// NewService wires a history.Service atop a run.Repository.
func NewService(repo run.Repository) Service {
	return &service{repo: repo}
}

func (s *service) Submit(ctx context.Context, cfg generator.GeneratorConfig, outputFormat string) (*run.GenerationRun, error) {
	r, err := run.NewGenerationRun(cfg, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("build generation run: %w", err)
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("persist generation run: %w", err)
	}
	return r, nil
}

func (s *service) MarkRunning(ctx context.Context, id ulid.ULID) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	r.Status = run.StatusRunning
	r.StartedAt = &now
	return s.repo.Update(ctx, r)
}

func (s *service) MarkCompleted(ctx context.Context, id ulid.ULID, rowCount int, outputPath string) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	r.Status = run.StatusCompleted
	r.RowCount = rowCount
	r.OutputPath = outputPath
	r.FinishedAt = &now
	return s.repo.Update(ctx, r)
}

func (s *service) MarkFailed(ctx context.Context, id ulid.ULID, cause error) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	r.Status = run.StatusFailed
	r.Error = cause.Error()
	r.FinishedAt = &now
	return s.repo.Update(ctx, r)
}

func (s *service) Get(ctx context.Context, id ulid.ULID) (*run.GenerationRun, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filters run.ListFilters) ([]*run.GenerationRun, int64, error) {
	return s.repo.List(ctx, filters)
}
