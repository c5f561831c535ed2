package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeWindow_Steps(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		w    TimeWindow
		want int
	}{
		{"one hour at 1min granularity", TimeWindow{Start: start, End: start.Add(time.Hour), GranularityMinutes: 1}, 61},
		{"exact single step", TimeWindow{Start: start, End: start, GranularityMinutes: 5}, 1},
		{"zero granularity", TimeWindow{Start: start, End: start.Add(time.Hour), GranularityMinutes: 0}, 0},
		{"end before start", TimeWindow{Start: start, End: start.Add(-time.Hour), GranularityMinutes: 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.w.Steps())
		})
	}
}

func TestMetric_Key(t *testing.T) {
	m := Metric{Name: "latency"}
	assert.Equal(t, "CORE_NET_01_latency", m.Key("CORE_NET_01"))
}

func TestGeneratorConfig_MetricKeys(t *testing.T) {
	cfg := GeneratorConfig{
		Entities: []Entity{
			{ID: "a", Metrics: []Metric{{Name: "x"}, {Name: "y"}}},
			{ID: "b", Metrics: []Metric{{Name: "z"}}},
		},
	}
	assert.Equal(t, []string{"a_x", "a_y", "b_z"}, cfg.MetricKeys())
	assert.Equal(t, 3, cfg.MetricCount())
}

func TestNewDataset(t *testing.T) {
	ts := []time.Time{time.Now(), time.Now().Add(time.Minute)}
	d := NewDataset(ts, []string{"a_x", "b_z"})

	assert.Equal(t, 2, d.Rows())
	col, ok := d.Column("a_x")
	assert.True(t, ok)
	assert.Len(t, col, 2)

	_, ok = d.Column("missing")
	assert.False(t, ok)
}
