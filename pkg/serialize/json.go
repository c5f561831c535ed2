package serialize

import (
	"encoding/json"
	"io"
	"time"

	domain "synthgen/internal/core/domain/generator"
)

// jsonRow is one record in the row-oriented JSON output: a timestamp
// plus a nested "values" object mapping every metric key to its value.
type jsonRow struct {
	Timestamp string             `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// WriteJSON writes ds as a JSON array of row objects, each carrying an
// ISO-8601 timestamp and a map of metric key to value (spec §6).
func WriteJSON(w io.Writer, ds *domain.Dataset) error {
	rows := make([]jsonRow, ds.Rows())
	for i, ts := range ds.Timestamps {
		values := make(map[string]float64, len(ds.Keys))
		for _, key := range ds.Keys {
			values[key] = ds.Columns[key][i]
		}
		rows[i] = jsonRow{Timestamp: ts.Format(time.RFC3339), Values: values}
	}

	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}
