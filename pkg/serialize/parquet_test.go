package serialize

import (
	"bytes"
	"testing"
)

func TestWriteParquet_ProducesValidFile(t *testing.T) {
	ds := sampleDataset()
	var buf bytes.Buffer
	if err := WriteParquet(&buf, ds); err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}
	b := buf.Bytes()
	if len(b) < 8 {
		t.Fatalf("output too short: %d bytes", len(b))
	}
	if string(b[:4]) != "PAR1" {
		t.Fatalf("missing leading magic bytes, got %q", b[:4])
	}
	if string(b[len(b)-4:]) != "PAR1" {
		t.Fatalf("missing trailing magic bytes, got %q", b[len(b)-4:])
	}
}
