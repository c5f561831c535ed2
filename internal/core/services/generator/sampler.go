package generator

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	domain "synthgen/internal/core/domain/generator"
)

// defaultCV is the fallback coefficient of variation used to derive
// Gamma's shape parameter when the config does not set params["cv"]
// (spec §4.2).
const defaultCV = 0.3

// SampleColumn draws T i.i.d. samples for one metric's DistributionSpec
// (spec §4.2), using the run's single shared RNG stream. adjustment
// multiplies mean before sampling (default 1.0 — used by higher-level
// callers that scale a template's baseline, e.g. capacity-relative
// generation; the core pipeline always passes 1.0).
func SampleColumn(d domain.DistributionSpec, steps int, rng *rand.Rand, adjustment float64) []float64 {
	mean := d.Mean * adjustment
	out := make([]float64, steps)

	switch d.Kind {
	case domain.DistributionPoisson:
		lambda := mean
		for i := range out {
			out[i] = sampleKnuthPoisson(lambda, rng)
		}

	case domain.DistributionGamma:
		cv := defaultCV
		if v, ok := d.Params["cv"]; ok && v > 0 {
			cv = v
		}
		k := 1 / (cv * cv)
		theta := mean / k
		g := distuv.Gamma{Alpha: k, Beta: 1 / theta, Src: rng}
		for i := range out {
			out[i] = g.Rand()
		}

	case domain.DistributionLogNormal:
		std := effectiveStd(d, mean)
		muLn := math.Log(mean * mean / math.Sqrt(mean*mean+std*std))
		sigmaLn := math.Sqrt(math.Log(1 + (std*std)/(mean*mean)))
		ln := distuv.LogNormal{Mu: muLn, Sigma: sigmaLn, Src: rng}
		for i := range out {
			out[i] = ln.Rand()
		}

	case domain.DistributionBeta:
		rescale := d.MaxValue != nil && *d.MaxValue > 1
		mu, sigma := mean, effectiveStd(d, mean)
		if rescale {
			mu /= 100
			sigma /= 100
		}
		v := sigma * sigma
		alpha := math.Max(0.1, mu*((mu*(1-mu)/v)-1))
		beta := math.Max(0.1, (1-mu)*((mu*(1-mu)/v)-1))
		b := distuv.Beta{Alpha: alpha, Beta: beta, Src: rng}
		for i := range out {
			x := b.Rand()
			if rescale {
				x *= 100
			}
			out[i] = x
		}

	case domain.DistributionExponential:
		rate := 1 / mean
		if r, ok := d.Params["rate"]; ok && r > 0 {
			rate = r
		}
		e := distuv.Exponential{Rate: rate, Src: rng}
		for i := range out {
			out[i] = e.Rand()
		}

	case domain.DistributionUniform:
		a, b := 0.5*mean, 1.5*mean
		if d.MinValue != nil {
			a = *d.MinValue
		}
		if d.MaxValue != nil {
			b = *d.MaxValue
		}
		u := distuv.Uniform{Min: a, Max: b, Src: rng}
		for i := range out {
			out[i] = u.Rand()
		}

	default: // Normal, and unknown kinds degrade to Normal (spec §4.2)
		std := effectiveStd(d, mean)
		n := distuv.Normal{Mu: mean, Sigma: std, Src: rng}
		for i := range out {
			out[i] = n.Rand()
		}
	}

	clamp(out, d.MinValue, d.MaxValue)
	return out
}

// effectiveStd returns the configured Std, or 0.1*mean when unset, per
// spec §4.2's fallback rule for Normal (applied identically to every
// other kind that needs an unspecified spread).
func effectiveStd(d domain.DistributionSpec, mean float64) float64 {
	if d.Std != nil {
		return *d.Std
	}
	return 0.1 * mean
}

func clamp(xs []float64, min, max *float64) {
	for i, x := range xs {
		if min != nil && x < *min {
			x = *min
		}
		if max != nil && x > *max {
			x = *max
		}
		xs[i] = x
	}
}

// sampleKnuthPoisson draws one Poisson(lambda) sample by the
// multiplication-of-uniforms method (Devroye, Non-Uniform Random
// Variate Generation, p504) — the same algorithm distuv.Poisson.Rand
// implements. It is reimplemented here, rather than calling
// distuv.Poisson directly, because distuv.Poisson.Source is a
// *math/rand.Rand while every other distribution used here takes a
// golang.org/x/exp/rand.Source; this keeps every draw on the run's one
// seeded stream (see DESIGN.md "RNG stream").
func sampleKnuthPoisson(lambda float64, rng *rand.Rand) float64 {
	x := 0.0
	prod := 1.0
	exp := math.Exp(-lambda)
	for {
		prod *= rng.Float64()
		if prod <= exp {
			return x
		}
		x++
	}
}
