package serialize

import (
	"io"
	"time"

	"github.com/parquet-go/parquet-go"

	domain "synthgen/internal/core/domain/generator"
)

// WriteParquet writes ds as Parquet: a "timestamp" string column (ISO-8601)
// and one double-precision column per metric key. A parquet.Group lays its
// fields out in name order, so the file's columns are sorted by name: the
// timestamp column is not necessarily first, and the metric columns do not
// follow column-enumeration order. The schema is built at write time since the
// column set varies per GeneratorConfig, unlike the teacher's
// ParquetWriter (internal/core/services/observability/parquet_writer.go),
// which writes a single fixed Go struct type via parquet.NewGenericWriter.
func WriteParquet(w io.Writer, ds *domain.Dataset) error {
	group := make(parquet.Group, len(ds.Keys)+1)
	group["timestamp"] = parquet.String()
	for _, key := range ds.Keys {
		group[key] = parquet.Leaf(parquet.DoubleType)
	}
	schema := parquet.NewSchema("row", group)

	colIndex := make(map[string]int, len(group))
	for idx, field := range schema.Fields() {
		colIndex[field.Name()] = idx
	}

	pw := parquet.NewWriter(w, schema)
	for i, ts := range ds.Timestamps {
		row := make(parquet.Row, len(group))
		tsCol := colIndex["timestamp"]
		row[tsCol] = parquet.ValueOf(ts.Format(time.RFC3339)).Level(0, 0, tsCol)
		for _, key := range ds.Keys {
			col := colIndex[key]
			row[col] = parquet.ValueOf(ds.Columns[key][i]).Level(0, 0, col)
		}
		if _, err := pw.WriteRows([]parquet.Row{row}); err != nil {
			return err
		}
	}
	return pw.Close()
}
