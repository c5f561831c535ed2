package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "synthgen/internal/core/domain/generator"
)

func TestBuildTimeAxis(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	axis := BuildTimeAxis(domain.TimeWindow{Start: start, End: start.Add(20 * time.Minute), GranularityMinutes: 5})

	assert.Len(t, axis, 5)
	assert.Equal(t, start, axis[0])
	assert.Equal(t, start.Add(20*time.Minute), axis[4])
}

func TestBuildTimeAxis_ZeroGranularity(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	axis := BuildTimeAxis(domain.TimeWindow{Start: start, End: start.Add(time.Hour), GranularityMinutes: 0})
	assert.Nil(t, axis)
}

func TestWindowIndices(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	axis := BuildTimeAxis(domain.TimeWindow{Start: start, End: start.Add(time.Hour), GranularityMinutes: 5})

	startIdx, endIdx, ok := WindowIndices(axis, start.Add(10*time.Minute), 20)
	assert.True(t, ok)
	assert.Equal(t, 2, startIdx)
	assert.Equal(t, 6, endIdx)
}

func TestWindowIndices_StartAfterAxisEnd(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	axis := BuildTimeAxis(domain.TimeWindow{Start: start, End: start.Add(time.Hour), GranularityMinutes: 5})

	_, _, ok := WindowIndices(axis, start.Add(10*time.Hour), 20)
	assert.False(t, ok)
}

func TestWindowIndices_NoEndWithinAxis(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	axis := BuildTimeAxis(domain.TimeWindow{Start: start, End: start.Add(time.Hour), GranularityMinutes: 5})

	startIdx, endIdx, ok := WindowIndices(axis, start.Add(55*time.Minute), 120)
	assert.True(t, ok)
	assert.Equal(t, 11, startIdx)
	assert.Equal(t, len(axis), endIdx)
}
