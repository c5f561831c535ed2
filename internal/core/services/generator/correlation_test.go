package generator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	domain "synthgen/internal/core/domain/generator"
)

func pearson(a, b []float64) float64 {
	n := float64(len(a))
	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	meanA, meanB := sumA/n, sumB/n

	var cov, varA, varB float64
	for i := range a {
		da, db := a[i]-meanA, b[i]-meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	return cov / math.Sqrt(varA*varB)
}

func newTestDataset(keys []string, steps int) *domain.Dataset {
	timestamps := make([]time.Time, steps)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Minute)
	}
	return domain.NewDataset(timestamps, keys)
}

func TestApplyCorrelation_MovesTowardTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	steps := 2000

	ds := newTestDataset([]string{"a", "b"}, steps)
	ds.Columns["a"] = SampleColumn(domain.DistributionSpec{Kind: domain.DistributionNormal, Mean: 0, Std: ptr(1)}, steps, rng, 1.0)
	ds.Columns["b"] = SampleColumn(domain.DistributionSpec{Kind: domain.DistributionNormal, Mean: 0, Std: ptr(1)}, steps, rng, 1.0)

	before := pearson(ds.Columns["a"], ds.Columns["b"])
	assert.Less(t, math.Abs(before), 0.2, "uncorrelated samples should start near zero correlation")

	ApplyCorrelation(ds, []domain.CorrelationEdge{{SourceKey: "a", TargetKey: "b", Coefficient: 0.8}})

	after := pearson(ds.Columns["a"], ds.Columns["b"])
	assert.Greater(t, after, 0.6, "coupling should move empirical correlation toward the target")
}

func TestApplyCorrelation_UnknownKeysIgnored(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	steps := 100
	ds := newTestDataset([]string{"a", "b"}, steps)
	ds.Columns["a"] = SampleColumn(domain.DistributionSpec{Kind: domain.DistributionNormal, Mean: 10, Std: ptr(1)}, steps, rng, 1.0)
	ds.Columns["b"] = SampleColumn(domain.DistributionSpec{Kind: domain.DistributionNormal, Mean: 10, Std: ptr(1)}, steps, rng, 1.0)

	assert.NotPanics(t, func() {
		ApplyCorrelation(ds, []domain.CorrelationEdge{{SourceKey: "a", TargetKey: "missing", Coefficient: 0.5}})
	})
}

func TestApplyCorrelation_PreservesMarginalValues(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	steps := 500
	ds := newTestDataset([]string{"a", "b"}, steps)
	ds.Columns["a"] = SampleColumn(domain.DistributionSpec{Kind: domain.DistributionPoisson, Mean: 20}, steps, rng, 1.0)
	ds.Columns["b"] = SampleColumn(domain.DistributionSpec{Kind: domain.DistributionPoisson, Mean: 20}, steps, rng, 1.0)

	wantA := append([]float64(nil), ds.Columns["a"]...)
	wantB := append([]float64(nil), ds.Columns["b"]...)

	ApplyCorrelation(ds, []domain.CorrelationEdge{{SourceKey: "a", TargetKey: "b", Coefficient: 0.5}})

	assert.ElementsMatch(t, wantA, ds.Columns["a"], "copula mapping must reuse original sampled values, only reorder them")
	assert.ElementsMatch(t, wantB, ds.Columns["b"])
}
