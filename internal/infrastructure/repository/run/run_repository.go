// Package run provides the gorm-backed implementation of run.Repository.
package run

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	runDomain "synthgen/internal/core/domain/run"
	"synthgen/pkg/ulid"
)

type runRepository struct {
	db *gorm.DB
}

// NewRunRepository returns a gorm-backed runDomain.Repository.
func NewRunRepository(db *gorm.DB) runDomain.Repository {
	return &runRepository{db: db}
}

func (r *runRepository) Create(ctx context.Context, run *runDomain.GenerationRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *runRepository) GetByID(ctx context.Context, id ulid.ULID) (*runDomain.GenerationRun, error) {
	var run runDomain.GenerationRun
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get run %s: %w", id, runDomain.ErrNotFound)
		}
		return nil, fmt.Errorf("database query failed for run %s: %w", id, err)
	}
	return &run, nil
}

func (r *runRepository) Update(ctx context.Context, run *runDomain.GenerationRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *runRepository) List(ctx context.Context, filters runDomain.ListFilters) ([]*runDomain.GenerationRun, int64, error) {
	q := r.db.WithContext(ctx).Model(&runDomain.GenerationRun{})
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count runs: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	var runs []*runDomain.GenerationRun
	err := q.Order("created_at DESC").Limit(limit).Offset(filters.Offset).Find(&runs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list runs: %w", err)
	}
	return runs, total, nil
}
