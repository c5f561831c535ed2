package generator

import (
	"fmt"

	apperrors "synthgen/pkg/errors"
)

// Validate checks a GeneratorConfig against the rules in spec §6/§7.1.
// Fatal problems (ConfigError) abort generation and are returned as the
// error value; non-fatal problems (dangling references) are collected
// into ReferenceWarning and generation may proceed.
func (c GeneratorConfig) Validate() ([]apperrors.ReferenceWarning, error) {
	var warnings []apperrors.ReferenceWarning

	if len(c.Entities) == 0 {
		return nil, apperrors.NewConfigError("entities", "at least one entity is required")
	}
	if c.MetricCount() == 0 {
		return nil, apperrors.NewConfigError("entities[].metrics", "at least one metric is required")
	}
	if !c.TimeWindow.Start.Before(c.TimeWindow.End) {
		return nil, apperrors.NewConfigError("time_window", "start_time must be before end_time")
	}
	if c.TimeWindow.GranularityMinutes <= 0 {
		return nil, apperrors.NewConfigError("time_window.granularity_minutes", "granularity must be positive")
	}

	seenEntity := make(map[string]bool, len(c.Entities))
	for _, e := range c.Entities {
		if e.ID == "" {
			return nil, apperrors.NewConfigError("entities[].entity_id", "entity_id must not be empty")
		}
		if seenEntity[e.ID] {
			return nil, apperrors.NewConfigError("entities[].entity_id", fmt.Sprintf("duplicate entity_id %q", e.ID))
		}
		seenEntity[e.ID] = true
		for _, m := range e.Metrics {
			if err := validateDistribution(e.ID, m); err != nil {
				return nil, err
			}
		}
	}

	keys := make(map[string]bool)
	for _, k := range c.MetricKeys() {
		keys[k] = true
	}

	for i, edge := range c.Correlations {
		if edge.Coefficient < -1 || edge.Coefficient > 1 {
			return nil, apperrors.NewConfigError(fmt.Sprintf("correlations[%d].coefficient", i),
				"correlation coefficient must be in [-1, 1]")
		}
		if !keys[edge.SourceKey] {
			warnings = append(warnings, apperrors.NewReferenceWarning(
				fmt.Sprintf("correlations[%d].source", i), "unknown metric key "+edge.SourceKey))
		}
		if !keys[edge.TargetKey] {
			warnings = append(warnings, apperrors.NewReferenceWarning(
				fmt.Sprintf("correlations[%d].target", i), "unknown metric key "+edge.TargetKey))
		}
	}

	for i, edge := range c.Dependencies {
		if !keys[edge.ParentKey] {
			warnings = append(warnings, apperrors.NewReferenceWarning(
				fmt.Sprintf("dependencies[%d].parent", i), "unknown metric key "+edge.ParentKey))
		}
		if !keys[edge.ChildKey] {
			warnings = append(warnings, apperrors.NewReferenceWarning(
				fmt.Sprintf("dependencies[%d].child", i), "unknown metric key "+edge.ChildKey))
		}
	}

	for i, cp := range c.ChangePoints {
		for _, k := range cp.AffectedKeys {
			if !keys[k] {
				warnings = append(warnings, apperrors.NewReferenceWarning(
					fmt.Sprintf("change_points[%d].affected_keys", i), "unknown metric key "+k))
			}
		}
	}

	for i, a := range c.Anomalies {
		if a.Severity < 0 || a.Severity > 1 {
			return nil, apperrors.NewConfigError(fmt.Sprintf("anomalies[%d].severity", i),
				"anomaly severity must be in [0, 1]")
		}
		if !keys[a.EpicenterKey] {
			warnings = append(warnings, apperrors.NewReferenceWarning(
				fmt.Sprintf("anomalies[%d].epicenter_key", i), "unknown metric key "+a.EpicenterKey))
		}
	}

	return warnings, nil
}

// validateDistribution enforces the ConfigError rules of spec §7.1 for a
// single metric's DistributionSpec.
func validateDistribution(entityID string, m Metric) error {
	field := entityID + "_" + m.Name + ".distribution"
	d := m.Distribution

	switch d.Kind {
	case DistributionGamma, DistributionLogNormal, DistributionPoisson:
		if d.Mean <= 0 {
			return apperrors.NewConfigError(field, "mean must be > 0 for "+string(d.Kind))
		}
	case DistributionBeta:
		rescaled := d.MaxValue != nil && *d.MaxValue > 1
		if !rescaled && (d.Mean <= 0 || d.Mean >= 1) {
			return apperrors.NewConfigError(field, "mean must be in (0, 1) for beta unless max_value > 1 implies rescaling")
		}
	}

	if cv, ok := d.Params["cv"]; ok && cv <= 0 {
		return apperrors.NewConfigError(field, "cv must be > 0")
	}

	return nil
}

// Estimate provides a cheap, pipeline-free sizing report used by the
// config validate endpoint (SPEC_FULL §SUPPLEMENTED FEATURES item 2).
type Estimate struct {
	Rows           int
	Columns        int
	EstimatedBytes int64
}

// Estimate computes row/column/byte counts without running any pipeline
// stage — linear in the number of entities (MetricCount walks them), O(1)
// in T via Steps().
func (c GeneratorConfig) Estimate() Estimate {
	rows := c.TimeWindow.Steps()
	cols := 1 + c.MetricCount()
	return Estimate{
		Rows:           rows,
		Columns:        cols,
		EstimatedBytes: int64(rows) * int64(cols) * 8,
	}
}
