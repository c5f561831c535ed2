package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "synthgen_generation_duration_seconds",
		Help:    "Wall-clock time to run a full generation pipeline.",
		Buckets: prometheus.DefBuckets,
	})

	rowsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synthgen_rows_generated_total",
		Help: "Total rows produced across all generation runs.",
	})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "synthgen_stage_duration_seconds",
		Help:    "Per-stage duration within the generation pipeline.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
)
