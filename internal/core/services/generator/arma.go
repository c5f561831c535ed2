package generator

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	domain "synthgen/internal/core/domain/generator"
)

// ApplyARMA runs the AR and MA smoothing passes over every column,
// in-place, in column-enumeration order (spec §4.5). A nil spec is a
// no-op. Noise draws share rng, consumed one column at a time, so the
// overall draw order matches whatever order ds.Keys already has.
func ApplyARMA(ds *domain.Dataset, spec *domain.ARMASpec, rng *rand.Rand) {
	if spec == nil {
		return
	}
	for _, key := range ds.Keys {
		col := ds.Columns[key]
		original := append([]float64(nil), col...)
		arPass(col, spec.ARCoef)
		maPass(col, original, spec.MACoef, spec.NoiseStd, rng)
	}
}

func arPass(x []float64, arCoef []float64) {
	p := len(arCoef)
	if p == 0 {
		return
	}
	for i := p; i < len(x); i++ {
		var ar float64
		for j := 1; j <= p; j++ {
			ar += arCoef[j-1] * x[i-j]
		}
		x[i] = 0.3*ar + 0.7*x[i]
	}
}

func maPass(x, original []float64, maCoef []float64, noiseStd float64, rng *rand.Rand) {
	t := len(x)
	std := stat.StdDev(original, nil)
	// Zero-variance column: noise uses noise_std directly (spec §7.1 NumericRecovery).
	sigma := noiseStd * std
	if std == 0 {
		sigma = noiseStd
	}

	n := distuv.Normal{Mu: 0, Sigma: sigma, Src: rng}
	eps := make([]float64, t)
	for i := range eps {
		eps[i] = n.Rand()
	}

	q := len(maCoef)
	for i := 0; i < t; i++ {
		var m float64
		if i >= q {
			for j := 1; j <= q; j++ {
				m += maCoef[j-1] * eps[i-j]
			}
		}
		x[i] += m
	}
}
