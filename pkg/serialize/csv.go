// Package serialize writes a generated Dataset out to the tabular and
// sidecar formats described in spec §6: CSV, Parquet, JSON, and a JSON
// metadata sidecar.
package serialize

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	domain "synthgen/internal/core/domain/generator"
)

// WriteCSV writes ds as CSV: a leading "timestamp" column in ISO-8601,
// followed by the metric keys in column-enumeration order (spec §6).
func WriteCSV(w io.Writer, ds *domain.Dataset) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, 0, len(ds.Keys)+1)
	header = append(header, "timestamp")
	header = append(header, ds.Keys...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, ts := range ds.Timestamps {
		row[0] = ts.Format(time.RFC3339)
		for j, key := range ds.Keys {
			row[j+1] = strconv.FormatFloat(ds.Columns[key][i], 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
