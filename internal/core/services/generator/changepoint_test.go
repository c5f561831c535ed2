package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "synthgen/internal/core/domain/generator"
)

func buildAxisDataset(t *testing.T, steps int, granularityMin int, value float64) (*domain.Dataset, []time.Time) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w := domain.TimeWindow{Start: start, End: start.Add(time.Duration((steps-1)*granularityMin) * time.Minute), GranularityMinutes: granularityMin}
	axis := BuildTimeAxis(w)
	ds := domain.NewDataset(axis, []string{"k"})
	col := make([]float64, len(axis))
	for i := range col {
		col[i] = value
	}
	ds.Columns["k"] = col
	return ds, axis
}

func TestApplyChangePoints_Step(t *testing.T) {
	ds, axis := buildAxisDataset(t, 10, 10, 100)
	cp := domain.ChangePoint{Kind: domain.ChangePointStep, AffectedKeys: []string{"k"}, StartTime: axis[3], DurationMinutes: 0, Magnitude: 0.5}

	ApplyChangePoints(ds, []domain.ChangePoint{cp})

	for i, v := range ds.Columns["k"] {
		if i < 3 {
			assert.Equal(t, 100.0, v)
		} else {
			assert.InDelta(t, 150, v, 1e-9)
		}
	}
}

func TestApplyChangePoints_RampThenPersists(t *testing.T) {
	ds, axis := buildAxisDataset(t, 10, 10, 100)
	cp := domain.ChangePoint{Kind: domain.ChangePointRamp, AffectedKeys: []string{"k"}, StartTime: axis[2], DurationMinutes: 40, Magnitude: 1.0}

	ApplyChangePoints(ds, []domain.ChangePoint{cp})

	assert.Equal(t, 100.0, ds.Columns["k"][0])
	assert.InDelta(t, 100, ds.Columns["k"][2], 1e-9) // progress 0 at start_idx
	assert.InDelta(t, 200, ds.Columns["k"][9], 1e-9) // persists at full magnitude past end
}

func TestApplyChangePoints_SkipsWhenStartBeyondAxis(t *testing.T) {
	ds, axis := buildAxisDataset(t, 5, 10, 100)
	cp := domain.ChangePoint{Kind: domain.ChangePointStep, AffectedKeys: []string{"k"}, StartTime: axis[len(axis)-1].Add(time.Hour), Magnitude: 2}

	assert.NotPanics(t, func() { ApplyChangePoints(ds, []domain.ChangePoint{cp}) })
	for _, v := range ds.Columns["k"] {
		assert.Equal(t, 100.0, v)
	}
}

func TestApplyChangePoints_OverlappingCompound(t *testing.T) {
	ds, axis := buildAxisDataset(t, 10, 10, 100)
	cps := []domain.ChangePoint{
		{Kind: domain.ChangePointStep, AffectedKeys: []string{"k"}, StartTime: axis[0], Magnitude: 0.5},
		{Kind: domain.ChangePointStep, AffectedKeys: []string{"k"}, StartTime: axis[0], Magnitude: 0.2},
	}
	ApplyChangePoints(ds, cps)
	assert.InDelta(t, 100*1.5*1.2, ds.Columns["k"][0], 1e-9)
}
