package generator

import (
	"testing"
	"time"

	domain "synthgen/internal/core/domain/generator"
)

func TestBuildQualityReport_FlagsZeroVarianceAndRateRange(t *testing.T) {
	ts := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 5, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 10, 0, 0, time.UTC),
	}
	ds := domain.NewDataset(ts, []string{"svc_success_rate", "svc_constant"})
	ds.Columns["svc_success_rate"] = []float64{0.9, 1.2, 0.95}
	ds.Columns["svc_constant"] = []float64{5, 5, 5}

	report := BuildQualityReport(ds)

	foundRateWarning := false
	for _, w := range report.Warnings {
		if w == "svc_success_rate: values exceed 1.0 for rate metric" {
			foundRateWarning = true
		}
	}
	if !foundRateWarning {
		t.Fatalf("expected rate-range warning, got %v", report.Warnings)
	}

	foundZeroVarWarning := false
	for _, w := range report.Warnings {
		if w == "svc_constant: zero variance detected" {
			foundZeroVarWarning = true
		}
	}
	if !foundZeroVarWarning {
		t.Fatalf("expected zero-variance warning, got %v", report.Warnings)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", report.Issues)
	}
	if report.Score >= 1.0 {
		t.Fatalf("expected score penalized below 1.0, got %f", report.Score)
	}
}

func TestBuildQualityReport_CleanDatasetPasses(t *testing.T) {
	ts := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 5, 0, 0, time.UTC),
	}
	ds := domain.NewDataset(ts, []string{"svc_cpu"})
	ds.Columns["svc_cpu"] = []float64{10, 12}

	report := BuildQualityReport(ds)
	if !report.Passed {
		t.Fatalf("expected clean dataset to pass, got score %f issues %v", report.Score, report.Issues)
	}
}
