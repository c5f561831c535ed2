package serialize

import (
	"encoding/json"
	"io"
	"time"

	domain "synthgen/internal/core/domain/generator"
)

// Metadata is the JSON sidecar emitted alongside a generated dataset's
// tabular output (spec §6): enough to reproduce and audit a run without
// re-reading the full GeneratorConfig.
type Metadata struct {
	GeneratedAt  time.Time `json:"generated_at"`
	Seed         int64     `json:"seed"`
	DomainType   string    `json:"domain_type,omitempty"`
	RowCount     int       `json:"row_count"`
	EntityCount  int       `json:"entity_count"`
	MetricCount  int       `json:"metric_count"`
	WindowStart  time.Time `json:"window_start"`
	WindowEnd    time.Time `json:"window_end"`
	Granularity  int       `json:"granularity_minutes"`
	Columns      []string  `json:"columns"`
}

// BuildMetadata derives a Metadata record from the config that produced
// ds and the dataset's own row count.
func BuildMetadata(cfg domain.GeneratorConfig, ds *domain.Dataset, generatedAt time.Time) Metadata {
	return Metadata{
		GeneratedAt: generatedAt,
		Seed:        cfg.Seed,
		DomainType:  cfg.DomainType,
		RowCount:    ds.Rows(),
		EntityCount: len(cfg.Entities),
		MetricCount: cfg.MetricCount(),
		WindowStart: cfg.TimeWindow.Start,
		WindowEnd:   cfg.TimeWindow.End,
		Granularity: cfg.TimeWindow.GranularityMinutes,
		Columns:     append([]string(nil), ds.Keys...),
	}
}

// WriteMetadata writes m as indented JSON.
func WriteMetadata(w io.Writer, m Metadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
