package generator

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	domain "synthgen/internal/core/domain/generator"
)

// ApplyAnomalies injects every configured anomaly in order (spec §4.7),
// epicenter column first, then one-hop dependency children at halved
// severity when propagate is set.
func ApplyAnomalies(ds *domain.Dataset, anomalies []domain.Anomaly, deps []domain.DependencyEdge, rng *rand.Rand) {
	for _, a := range anomalies {
		startIdx, endIdx, ok := WindowIndices(ds.Timestamps, a.StartTime, a.DurationMinutes)
		if !ok {
			continue
		}
		if col, present := ds.Columns[a.EpicenterKey]; present {
			injectAnomaly(col, a.Kind, a.Severity, startIdx, endIdx, rng)
		}
		if a.Propagate {
			for _, child := range childrenOf(a.EpicenterKey, deps) {
				if col, present := ds.Columns[child]; present {
					injectAnomaly(col, a.Kind, a.Severity/2, startIdx, endIdx, rng)
				}
			}
		}
	}
}

func childrenOf(parent string, deps []domain.DependencyEdge) []string {
	var out []string
	for _, e := range deps {
		if e.ParentKey == parent {
			out = append(out, e.ChildKey)
		}
	}
	return out
}

func injectAnomaly(col []float64, kind domain.AnomalyKind, severity float64, startIdx, endIdx int, rng *rand.Rand) {
	d := endIdx - startIdx
	if d <= 0 {
		return
	}

	switch kind {
	case domain.AnomalySpike:
		for i := 0; i < d; i++ {
			phase := linspace(0, math.Pi, d, i)
			col[startIdx+i] *= 1 + severity*(1+0.5*math.Sin(phase))
		}

	case domain.AnomalyDrop:
		for i := 0; i < d; i++ {
			phase := linspace(0, math.Pi, d, i)
			col[startIdx+i] *= math.Max(1-severity*(1+0.5*math.Sin(phase)), 0.1)
		}

	case domain.AnomalyOscillation:
		for i := 0; i < d; i++ {
			phase := linspace(0, 4*math.Pi, d, i)
			col[startIdx+i] *= 1 + severity*math.Sin(phase)
		}

	case domain.AnomalyDegradation:
		for i := 0; i < d; i++ {
			progress := linspace(0, 1, d, i)
			col[startIdx+i] *= math.Max(1-severity*progress, 0.2)
		}

	case domain.AnomalyOutage:
		mult := 1 - severity
		for i := startIdx; i < endIdx; i++ {
			col[i] *= mult
		}

	case domain.AnomalyCongestion:
		n := distuv.Normal{Mu: 1, Sigma: 0.3 * severity, Src: rng}
		for i := startIdx; i < endIdx; i++ {
			col[i] *= n.Rand()
		}

	case domain.AnomalyDrift:
		// reserved, no defined pattern (spec §9): no-op.
	}
}

// linspace returns the i-th of d evenly spaced points in [start, end],
// matching numpy's linspace(start, end, d) used throughout spec §4.7's
// multiplier table.
func linspace(start, end float64, d, i int) float64 {
	if d <= 1 {
		return start
	}
	return start + (end-start)*float64(i)/float64(d-1)
}
