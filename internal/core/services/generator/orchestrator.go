package generator

import (
	"time"

	"golang.org/x/exp/rand"

	domain "synthgen/internal/core/domain/generator"
)

// metricRef pairs a fully-qualified column key with the metric that
// produces it, in the config's canonical column-enumeration order.
type metricRef struct {
	key    string
	metric domain.Metric
}

func metricRefs(cfg domain.GeneratorConfig) []metricRef {
	refs := make([]metricRef, 0, cfg.MetricCount())
	for _, e := range cfg.Entities {
		for _, m := range e.Metrics {
			refs = append(refs, metricRef{key: m.Key(e.ID), metric: m})
		}
	}
	return refs
}

// Generate drives every pipeline stage in spec §4's fixed order,
// sharing one seeded RNG stream end to end: sampler draws, then ARMA
// noise, then anomaly congestion noise, consumed in column-enumeration
// order (spec §4.8/§9). Stages with no configuration are skipped.
func Generate(cfg domain.GeneratorConfig) *domain.Dataset {
	runStart := time.Now()
	defer func() { generationDuration.Observe(time.Since(runStart).Seconds()) }()

	ds := runPipeline(cfg, func(name string, fn func()) {
		start := time.Now()
		fn()
		stageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	})

	rowsGenerated.Add(float64(ds.Rows()))
	return ds
}

// GenerateWithProgress drives the same stage sequence as Generate but
// invokes onStage with the stage name and the dataset's row count after
// each stage completes, for callers streaming progress over a socket.
// It does not record the generationDuration/stageDuration metrics
// Generate does, since a progress-observed run is not representative of
// unattended request latency.
func GenerateWithProgress(cfg domain.GeneratorConfig, onStage func(stage string, rows int)) *domain.Dataset {
	var ds *domain.Dataset
	ds = runPipeline(cfg, func(name string, fn func()) {
		fn()
		onStage(name, ds.Rows())
	})
	return ds
}

func runPipeline(cfg domain.GeneratorConfig, stage func(name string, fn func())) *domain.Dataset {
	axis := BuildTimeAxis(cfg.TimeWindow)
	refs := metricRefs(cfg)
	keys := make([]string, len(refs))
	for i, r := range refs {
		keys[i] = r.key
	}
	ds := domain.NewDataset(axis, keys)
	steps := len(axis)

	rng := rand.New(rand.NewSource(uint64(cfg.Seed)))

	// DistributionSampler (§4.2). The shared RNG stream forces strictly
	// sequential consumption in column-enumeration order to stay
	// reproducible (spec §9); real per-column parallelism would need the
	// counter-based RNG substream split spec §5 describes, which this
	// single-stream orchestrator does not implement.
	stage("sample", func() {
		for _, r := range refs {
			ds.Columns[r.key] = SampleColumn(r.metric.Distribution, steps, rng, 1.0)
		}
	})

	// CorrelationCoupler (§4.3): synchronization barrier, no randomness.
	if len(cfg.Correlations) > 0 {
		stage("correlate", func() { ApplyCorrelation(ds, cfg.Correlations) })
	}

	// SeasonalityModulator (§4.4).
	stage("seasonality", func() { ApplySeasonality(ds, cfg.Seasonality) })

	// ARMASmoother (§4.5).
	stage("arma", func() { ApplyARMA(ds, cfg.ARMA, rng) })

	// ChangePointApplier (§4.6).
	stage("change_points", func() { ApplyChangePoints(ds, cfg.ChangePoints) })

	// AnomalyInjector (§4.7).
	stage("anomalies", func() { ApplyAnomalies(ds, cfg.Anomalies, cfg.Dependencies, rng) })

	return ds
}
