package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "synthgen/pkg/errors"
)

func baseConfig() GeneratorConfig {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return GeneratorConfig{
		Seed:       1,
		TimeWindow: TimeWindow{Start: start, End: start.Add(time.Hour), GranularityMinutes: 5},
		Entities: []Entity{{
			ID: "e1",
			Metrics: []Metric{
				{Name: "m1", Distribution: DistributionSpec{Kind: DistributionNormal, Mean: 10, Std: f(1)}},
			},
		}},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := baseConfig()
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidate_NoEntities(t *testing.T) {
	cfg := baseConfig()
	cfg.Entities = nil
	_, err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigError(err))
}

func TestValidate_BadTimeWindow(t *testing.T) {
	cfg := baseConfig()
	cfg.TimeWindow.End = cfg.TimeWindow.Start
	_, err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_CorrelationOutOfRange(t *testing.T) {
	cfg := baseConfig()
	cfg.Correlations = []CorrelationEdge{{SourceKey: "e1_m1", TargetKey: "e1_m1", Coefficient: 1.5}}
	_, err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_UnknownReferenceIsWarningNotError(t *testing.T) {
	cfg := baseConfig()
	cfg.Correlations = []CorrelationEdge{{SourceKey: "e1_m1", TargetKey: "nope", Coefficient: 0.5}}
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "nope")
}

func TestValidate_AnomalySeverityOutOfRange(t *testing.T) {
	cfg := baseConfig()
	cfg.Anomalies = []Anomaly{{EpicenterKey: "e1_m1", Severity: 1.5}}
	_, err := cfg.Validate()
	require.Error(t, err)
}

func TestValidateDistribution_GammaRequiresPositiveMean(t *testing.T) {
	cfg := baseConfig()
	cfg.Entities[0].Metrics[0].Distribution = DistributionSpec{Kind: DistributionGamma, Mean: -1}
	_, err := cfg.Validate()
	require.Error(t, err)
}

func TestValidateDistribution_BetaRequiresMeanInUnitInterval(t *testing.T) {
	cfg := baseConfig()
	cfg.Entities[0].Metrics[0].Distribution = DistributionSpec{Kind: DistributionBeta, Mean: 1.5}
	_, err := cfg.Validate()
	require.Error(t, err)
}

func TestValidateDistribution_BetaRescaledAllowsMeanAbove1(t *testing.T) {
	cfg := baseConfig()
	cfg.Entities[0].Metrics[0].Distribution = DistributionSpec{Kind: DistributionBeta, Mean: 99.5, MaxValue: f(100)}
	_, err := cfg.Validate()
	assert.NoError(t, err)
}

func TestEstimate(t *testing.T) {
	cfg := baseConfig()
	est := cfg.Estimate()
	assert.Equal(t, 13, est.Rows) // floor(60/5)+1
	assert.Equal(t, 2, est.Columns)
	assert.Equal(t, int64(13*2*8), est.EstimatedBytes)
}
