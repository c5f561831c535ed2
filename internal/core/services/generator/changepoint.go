package generator

import domain "synthgen/internal/core/domain/generator"

// ApplyChangePoints applies every configured change point in order
// (spec §4.6). Overlapping change points compound, since each is a
// multiplication against the current column state.
func ApplyChangePoints(ds *domain.Dataset, points []domain.ChangePoint) {
	for _, cp := range points {
		startIdx, endIdx, ok := WindowIndices(ds.Timestamps, cp.StartTime, cp.DurationMinutes)
		if !ok {
			continue
		}
		for _, key := range cp.AffectedKeys {
			col, present := ds.Columns[key]
			if !present {
				continue
			}
			applyChangePoint(col, cp.Kind, cp.Magnitude, startIdx, endIdx)
		}
	}
}

func applyChangePoint(col []float64, kind domain.ChangePointKind, magnitude float64, startIdx, endIdx int) {
	switch kind {
	case domain.ChangePointStep:
		for i := startIdx; i < len(col); i++ {
			col[i] *= 1 + magnitude
		}

	case domain.ChangePointRamp, domain.ChangePointSeasonal: // seasonal treated as ramp (spec §9)
		span := endIdx - startIdx
		for i := startIdx; i < endIdx && i < len(col); i++ {
			progress := 1.0
			if span > 0 {
				progress = float64(i-startIdx) / float64(span)
			}
			col[i] *= 1 + magnitude*progress
		}
		for i := endIdx; i < len(col); i++ {
			col[i] *= 1 + magnitude
		}
	}
}
