package generator

import (
	"math"
	"time"

	domain "synthgen/internal/core/domain/generator"
)

// ApplySeasonality multiplicatively overlays a Fourier-series seasonal
// envelope on every column (spec §4.4). A nil spec is a no-op.
func ApplySeasonality(ds *domain.Dataset, spec *domain.SeasonalitySpec) {
	if spec == nil || len(ds.Timestamps) == 0 {
		return
	}
	envelope := seasonalEnvelope(ds.Timestamps, *spec)
	for _, key := range ds.Keys {
		col := ds.Columns[key]
		for i, x := range col {
			col[i] = x * (1 + envelope[i])
		}
	}
}

func seasonalEnvelope(timestamps []time.Time, spec domain.SeasonalitySpec) []float64 {
	t0 := timestamps[0]
	out := make([]float64, len(timestamps))
	harmonics := spec.Harmonics
	if harmonics < 1 {
		harmonics = 1
	}
	for i, t := range timestamps {
		h := t.Sub(t0).Hours()
		var s float64
		for k := 1; k <= harmonics; k++ {
			s += (spec.Amplitude / float64(k)) * math.Sin(2*math.Pi*float64(k)*h/spec.PeriodHours+spec.PhaseShift)
		}
		out[i] = s
	}
	return out
}
