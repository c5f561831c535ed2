// Package generator holds the declarative data model consumed by the
// generation pipeline: entities, metrics, distributions, correlation and
// dependency graphs, and the temporal overlays (seasonality, ARMA
// smoothing, change points, anomalies) applied on top of sampled data.
package generator

import "time"

// DistributionKind tags a DistributionSpec's sampling family.
type DistributionKind string

const (
	DistributionNormal      DistributionKind = "normal"
	DistributionPoisson     DistributionKind = "poisson"
	DistributionGamma       DistributionKind = "gamma"
	DistributionLogNormal   DistributionKind = "lognormal"
	DistributionBeta        DistributionKind = "beta"
	DistributionExponential DistributionKind = "exponential"
	DistributionUniform     DistributionKind = "uniform"
)

// DistributionSpec describes how one metric's raw samples are drawn.
// Std, MinValue and MaxValue are optional clamps/shape hints; Params
// carries distribution-specific knobs such as "cv" (coefficient of
// variation, used by Gamma) or "rate" (used by Exponential).
type DistributionSpec struct {
	Kind     DistributionKind   `json:"type" mapstructure:"type"`
	Mean     float64            `json:"mean" mapstructure:"mean"`
	Std      *float64           `json:"std,omitempty" mapstructure:"std"`
	MinValue *float64           `json:"min_value,omitempty" mapstructure:"min_value"`
	MaxValue *float64           `json:"max_value,omitempty" mapstructure:"max_value"`
	Params   map[string]float64 `json:"params,omitempty" mapstructure:"params"`
}

// Metric is one sampled, time-varying column within an Entity.
// Dependencies is carried as informational metadata describing which
// other metric keys this one conceptually relies on; the graph actually
// walked during anomaly propagation (§4.7) is GeneratorConfig.Dependencies.
type Metric struct {
	Name         string             `json:"name" mapstructure:"name"`
	DisplayName  string             `json:"display_name" mapstructure:"display_name"`
	Unit         string             `json:"unit" mapstructure:"unit"`
	Category     string             `json:"category" mapstructure:"category"`
	Distribution DistributionSpec   `json:"distribution" mapstructure:"distribution"`
	Dependencies []string           `json:"dependencies,omitempty" mapstructure:"dependencies"`
	Constraints  map[string]float64 `json:"constraints,omitempty" mapstructure:"constraints"`
}

// Key returns the fully qualified column key "{entity_id}_{name}".
func (m Metric) Key(entityID string) string {
	return entityID + "_" + m.Name
}

// Entity is a flat, named container of metrics. There is no hierarchy.
type Entity struct {
	ID       string            `json:"entity_id" mapstructure:"entity_id"`
	Type     string            `json:"entity_type" mapstructure:"entity_type"`
	Capacity *float64          `json:"capacity,omitempty" mapstructure:"capacity"`
	Metadata map[string]string `json:"metadata,omitempty" mapstructure:"metadata"`
	Metrics  []Metric          `json:"metrics" mapstructure:"metrics"`
}

// TimeWindow bounds the generation run at a fixed granularity.
type TimeWindow struct {
	Start              time.Time `json:"start_time" mapstructure:"start_time"`
	End                time.Time `json:"end_time" mapstructure:"end_time"`
	GranularityMinutes int       `json:"granularity_minutes" mapstructure:"granularity_minutes"`
}

// Steps returns T = floor((end-start)/Δ) + 1.
func (w TimeWindow) Steps() int {
	delta := time.Duration(w.GranularityMinutes) * time.Minute
	if delta <= 0 {
		return 0
	}
	span := w.End.Sub(w.Start)
	if span < 0 {
		return 0
	}
	return int(span/delta) + 1
}

// CorrelationEdge is a target pairwise correlation between two metric
// keys, consumed by the Gaussian-copula coupling stage (§4.3). Lag is
// accepted for forward-compatibility but has no applied semantics in the
// copula step (spec §9 open question).
type CorrelationEdge struct {
	SourceKey   string  `json:"source" mapstructure:"source"`
	TargetKey   string  `json:"target" mapstructure:"target"`
	Coefficient float64 `json:"coefficient" mapstructure:"coefficient"`
	Lag         int     `json:"lag,omitempty" mapstructure:"lag"`
}

// DependencyEdge is a directed edge in the metric dependency graph,
// consulted only by anomaly propagation (§4.7). InfluenceFactor and
// DelayMinutes are accepted and preserved but, like CorrelationEdge.Lag,
// are not applied by the one-hop, halved-severity propagation rule.
type DependencyEdge struct {
	ParentKey       string  `json:"parent" mapstructure:"parent"`
	ChildKey        string  `json:"child" mapstructure:"child"`
	InfluenceFactor float64 `json:"influence_factor,omitempty" mapstructure:"influence_factor"`
	DelayMinutes    int     `json:"delay_minutes,omitempty" mapstructure:"delay_minutes"`
}

// SeasonalitySpec is a single Fourier-series envelope applied uniformly
// to every column (§4.4).
type SeasonalitySpec struct {
	PeriodHours float64 `json:"period_hours" mapstructure:"period_hours"`
	Amplitude   float64 `json:"amplitude" mapstructure:"amplitude"`
	Harmonics   int     `json:"harmonics" mapstructure:"harmonics"`
	PhaseShift  float64 `json:"phase_shift" mapstructure:"phase_shift"`
}

// ARMASpec is a single AR+MA smoothing configuration applied identically
// to every column (§4.5); each column draws its own noise from the
// shared RNG stream.
type ARMASpec struct {
	AROrder  int       `json:"ar_order" mapstructure:"ar_order"`
	MAOrder  int       `json:"ma_order" mapstructure:"ma_order"`
	ARCoef   []float64 `json:"ar_coef" mapstructure:"ar_coef"`
	MACoef   []float64 `json:"ma_coef" mapstructure:"ma_coef"`
	NoiseStd float64   `json:"noise_std" mapstructure:"noise_std"`
}

// ChangePointKind selects the shape of a ChangePoint's multiplicative
// shift.
type ChangePointKind string

const (
	ChangePointStep     ChangePointKind = "step"
	ChangePointRamp     ChangePointKind = "ramp"
	ChangePointSeasonal ChangePointKind = "seasonal" // reserved, treated as ramp (§9)
)

// ChangePoint applies a persistent multiplicative shift to a set of
// columns starting at a point in time (§4.6).
type ChangePoint struct {
	ID              string          `json:"id" mapstructure:"id"`
	Kind            ChangePointKind `json:"kind" mapstructure:"kind"`
	AffectedKeys    []string        `json:"affected_keys" mapstructure:"affected_keys"`
	StartTime       time.Time       `json:"start_time" mapstructure:"start_time"`
	DurationMinutes int             `json:"duration_minutes" mapstructure:"duration_minutes"`
	Magnitude       float64         `json:"magnitude" mapstructure:"magnitude"`
}

// AnomalyKind selects the injected pattern's shape.
type AnomalyKind string

const (
	AnomalySpike       AnomalyKind = "spike"
	AnomalyDrop        AnomalyKind = "drop"
	AnomalyOscillation AnomalyKind = "oscillation"
	AnomalyCongestion  AnomalyKind = "congestion"
	AnomalyDegradation AnomalyKind = "degradation"
	AnomalyOutage      AnomalyKind = "outage"
	AnomalyDrift       AnomalyKind = "drift" // reserved, no defined pattern (§9)
)

// Anomaly injects a transient pattern at an epicenter column and,
// optionally, one hop into its dependents at halved severity (§4.7).
// AffectedEntities is carried through from config but, like
// AnomalyDrift, has no defined application beyond the epicenter and its
// propagated children — the core never broadcasts an anomaly across an
// entity fleet on its own.
type Anomaly struct {
	ID               string      `json:"id" mapstructure:"id"`
	Kind             AnomalyKind `json:"kind" mapstructure:"kind"`
	StartTime        time.Time   `json:"start_time" mapstructure:"start_time"`
	DurationMinutes  int         `json:"duration_minutes" mapstructure:"duration_minutes"`
	Severity         float64     `json:"severity" mapstructure:"severity"`
	EpicenterKey     string      `json:"epicenter_key" mapstructure:"epicenter_key"`
	Propagate        bool        `json:"propagate" mapstructure:"propagate"`
	AffectedEntities []string    `json:"affected_entities,omitempty" mapstructure:"affected_entities"`
}

// GeneratorConfig is the complete, immutable input to a generation run.
// Seasonality and ARMA are each a single spec applied uniformly to every
// column; an absent/nil value skips that stage entirely.
type GeneratorConfig struct {
	Seed         int64             `json:"seed" mapstructure:"seed"`
	DomainType   string            `json:"domain_type,omitempty" mapstructure:"domain_type"`
	TimeWindow   TimeWindow        `json:"time_window" mapstructure:"time_window"`
	Entities     []Entity          `json:"entities" mapstructure:"entities"`
	Correlations []CorrelationEdge `json:"correlations,omitempty" mapstructure:"correlations"`
	Dependencies []DependencyEdge  `json:"dependencies,omitempty" mapstructure:"dependencies"`
	Seasonality  *SeasonalitySpec  `json:"seasonality,omitempty" mapstructure:"seasonality"`
	ARMA         *ARMASpec         `json:"arma,omitempty" mapstructure:"arma"`
	ChangePoints []ChangePoint     `json:"change_points,omitempty" mapstructure:"change_points"`
	Anomalies    []Anomaly         `json:"anomalies,omitempty" mapstructure:"anomalies"`
}

// MetricKeys returns every metric's fully qualified key in insertion
// order: entities in config order, metrics within an entity in config
// order. This is the column-enumeration order referenced throughout §4
// and §5.
func (c GeneratorConfig) MetricKeys() []string {
	keys := make([]string, 0)
	for _, e := range c.Entities {
		for _, m := range e.Metrics {
			keys = append(keys, m.Key(e.ID))
		}
	}
	return keys
}

// MetricCount returns the total number of metrics across all entities.
func (c GeneratorConfig) MetricCount() int {
	n := 0
	for _, e := range c.Entities {
		n += len(e.Metrics)
	}
	return n
}

// Dataset is the pipeline's working matrix and final output: a dense
// T×M table, column-keyed, with a leading implicit timestamp axis.
type Dataset struct {
	Timestamps []time.Time
	Keys       []string // insertion order, excludes "timestamp"
	Columns    map[string][]float64
}

// NewDataset allocates a Dataset with the given timestamps and column
// keys, each column pre-sized to len(timestamps) and zeroed.
func NewDataset(timestamps []time.Time, keys []string) *Dataset {
	cols := make(map[string][]float64, len(keys))
	for _, k := range keys {
		cols[k] = make([]float64, len(timestamps))
	}
	return &Dataset{
		Timestamps: timestamps,
		Keys:       append([]string(nil), keys...),
		Columns:    cols,
	}
}

// Rows returns T, the number of timestamps.
func (d *Dataset) Rows() int {
	return len(d.Timestamps)
}

// Column returns the column for key, or nil and false if absent. Used
// throughout the pipeline stages to silently skip unknown-key
// references (spec §3 invariant: unknown keys are skipped, not fatal).
func (d *Dataset) Column(key string) ([]float64, bool) {
	col, ok := d.Columns[key]
	return col, ok
}
