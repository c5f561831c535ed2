// Package run holds the persisted record of a generation request: the
// config that produced it, its lifecycle status, and where its output
// ended up once the pipeline finished.
package run

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	generator "synthgen/internal/core/domain/generator"
	"synthgen/pkg/ulid"
)

// Status is a GenerationRun's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// GenerationRun is one invocation of the pipeline, persisted so it can be
// queried, re-downloaded, or audited after the fact.
type GenerationRun struct {
	ID           ulid.ULID      `json:"id" gorm:"type:char(26);primaryKey"`
	Status       Status         `json:"status" gorm:"size:20;not null;index"`
	Seed         int64          `json:"seed" gorm:"not null"`
	DomainType   string         `json:"domain_type,omitempty" gorm:"size:100"`
	ConfigJSON   string         `json:"-" gorm:"type:text;not null"`
	RowCount     int            `json:"row_count"`
	OutputFormat string         `json:"output_format" gorm:"size:20"`
	OutputPath   string         `json:"output_path,omitempty" gorm:"size:500"`
	Error        string         `json:"error,omitempty" gorm:"type:text"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// NewGenerationRun builds a pending run record from a submitted config.
// The config is stored as JSON so a run can be replayed or inspected
// without reconstructing it from individual columns.
func NewGenerationRun(cfg generator.GeneratorConfig, outputFormat string) (*GenerationRun, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return &GenerationRun{
		ID:           ulid.New(),
		Status:       StatusPending,
		Seed:         cfg.Seed,
		DomainType:   cfg.DomainType,
		ConfigJSON:   string(raw),
		OutputFormat: outputFormat,
	}, nil
}

// Config reconstructs the GeneratorConfig that produced this run.
func (r *GenerationRun) Config() (generator.GeneratorConfig, error) {
	var cfg generator.GeneratorConfig
	err := json.Unmarshal([]byte(r.ConfigJSON), &cfg)
	return cfg, err
}

// ListFilters narrows Repository.List to a status and/or a page window.
type ListFilters struct {
	Status Status
	Limit  int
	Offset int
}

// Repository abstracts GenerationRun persistence, allowing a gorm-backed
// implementation in production and an in-memory fake in tests.
type Repository interface {
	Create(ctx context.Context, r *GenerationRun) error
	GetByID(ctx context.Context, id ulid.ULID) (*GenerationRun, error)
	Update(ctx context.Context, r *GenerationRun) error
	List(ctx context.Context, filters ListFilters) ([]*GenerationRun, int64, error)
}

// ErrNotFound is returned by Repository.GetByID when no run matches.
var ErrNotFound = errors.New("generation run not found")
