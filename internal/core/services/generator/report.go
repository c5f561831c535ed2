package generator

import (
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	domain "synthgen/internal/core/domain/generator"
)

// ColumnSummary is the per-metric descriptive statistics included in a
// generation response's quality report.
type ColumnSummary struct {
	Key          string  `json:"key"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	ZeroVariance bool    `json:"zero_variance"`
}

// QualityReport scores a finished Dataset the way the reference
// implementation's DataValidator/QualityAssessor do: completeness,
// range sanity for rate-like columns, and a 0..1 overall score that
// degrades with each issue or warning found.
type QualityReport struct {
	Score    float64         `json:"score"`
	Passed   bool            `json:"passed"`
	Issues   []string        `json:"issues,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
	Columns  []ColumnSummary `json:"columns"`
}

// QualityThreshold is the minimum score a report must meet to pass,
// matching DataValidator's default quality_threshold=0.90.
const QualityThreshold = 0.90

// maxReportWorkers bounds the column-summarization fan-out so a dataset
// with thousands of columns doesn't spawn a goroutine per column.
const maxReportWorkers = 8

// BuildQualityReport computes a QualityReport over ds. Per-column
// summary statistics have no dependency between columns (unlike the
// pipeline stages, which thread one shared RNG stream through every
// column for reproducibility), so they're computed with bounded
// parallelism.
func BuildQualityReport(ds *domain.Dataset) QualityReport {
	summaries := make([]ColumnSummary, len(ds.Keys))

	g := new(errgroup.Group)
	g.SetLimit(maxReportWorkers)
	for i, key := range ds.Keys {
		i, key := i, key
		g.Go(func() error {
			summaries[i] = summarizeColumn(key, ds.Columns[key])
			return nil
		})
	}
	_ = g.Wait()

	var issues, warnings []string
	for i, key := range ds.Keys {
		col := ds.Columns[key]
		s := summaries[i]

		lower := strings.ToLower(key)
		looksLikeRate := strings.Contains(lower, "rate") || strings.Contains(lower, "success")
		if looksLikeRate {
			if s.Min < 0 {
				issues = append(issues, key+": contains negative values")
			}
			if s.Max > 1.0 {
				warnings = append(warnings, key+": values exceed 1.0 for rate metric")
			}
		}
		if s.ZeroVariance {
			warnings = append(warnings, key+": zero variance detected")
		}
		for _, v := range col {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				issues = append(issues, key+": contains non-finite values")
				break
			}
		}
	}

	score := 1.0 - float64(len(issues))*0.15 - float64(len(warnings))*0.05
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return QualityReport{
		Score:    score,
		Passed:   score >= QualityThreshold && len(issues) == 0,
		Issues:   issues,
		Warnings: warnings,
		Columns:  summaries,
	}
}

func columnMean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func summarizeColumn(key string, col []float64) ColumnSummary {
	if len(col) == 0 {
		return ColumnSummary{Key: key}
	}
	mean := columnMean(col)
	variance := 0.0
	min, max := col[0], col[0]
	for _, v := range col {
		d := v - mean
		variance += d * d
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	variance /= float64(len(col))
	std := math.Sqrt(variance)
	return ColumnSummary{
		Key:          key,
		Mean:         mean,
		StdDev:       std,
		Min:          min,
		Max:          max,
		ZeroVariance: std == 0,
	}
}
