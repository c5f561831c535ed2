// Package generator implements the generation pipeline stages described
// in spec §4: TimeAxis, DistributionSampler, CorrelationCoupler,
// SeasonalityModulator, ARMASmoother, ChangePointApplier,
// AnomalyInjector, and the Orchestrator that drives them in order.
package generator

import (
	"time"

	domain "synthgen/internal/core/domain/generator"
)

// BuildTimeAxis produces the ordered timestamp vector t_0..t_{T-1} with
// t_i = start + i*Δ, for every t_i <= end (spec §4.1). All timestamps
// are normalized to the window's own location so later index lookups
// (change points, anomalies) never compare naive and zoned times.
func BuildTimeAxis(w domain.TimeWindow) []time.Time {
	steps := w.Steps()
	if steps <= 0 {
		return nil
	}
	loc := w.Start.Location()
	delta := time.Duration(w.GranularityMinutes) * time.Minute

	axis := make([]time.Time, steps)
	for i := 0; i < steps; i++ {
		axis[i] = w.Start.In(loc).Add(time.Duration(i) * delta)
	}
	return axis
}

// WindowIndices locates [startIdx, endIdx) for an interval
// [start, start+duration) against axis, by linear scan (spec §4.6/§4.7):
// startIdx is the first index with t_i >= start; endIdx is the first
// index with t_i >= start+duration, or len(axis) if none. ok is false
// when no timestamp satisfies t_i >= start (the interval starts after
// the axis ends), matching "if start_idx is undefined, skip".
func WindowIndices(axis []time.Time, start time.Time, durationMinutes int) (startIdx, endIdx int, ok bool) {
	startIdx = -1
	for i, t := range axis {
		if !t.Before(start) {
			startIdx = i
			break
		}
	}
	if startIdx == -1 {
		return 0, 0, false
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	endIdx = len(axis)
	for i := startIdx; i < len(axis); i++ {
		if !axis[i].Before(end) {
			endIdx = i
			break
		}
	}
	return startIdx, endIdx, true
}
