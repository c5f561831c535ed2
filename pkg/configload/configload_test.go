package configload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
seed: 42
domain_type: telecom
time_window:
  start_time: 2026-01-01T00:00:00Z
  end_time: 2026-01-01T01:00:00Z
  granularity_minutes: 5
entities:
  - entity_id: cell1
    metrics:
      - name: latency
        distribution:
          type: normal
          mean: 10
`

func TestLoad_ParsesYAMLIntoGeneratorConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "telecom", cfg.DomainType)
	assert.Len(t, cfg.Entities, 1)
	assert.Equal(t, "latency", cfg.Entities[0].Metrics[0].Name)
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}
