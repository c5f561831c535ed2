package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	generator "synthgen/internal/core/domain/generator"
	run "synthgen/internal/core/domain/run"
	"synthgen/pkg/ulid"
)

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) Submit(ctx context.Context, cfg generator.GeneratorConfig, outputFormat string) (*run.GenerationRun, error) {
	args := m.Called(ctx, cfg, outputFormat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*run.GenerationRun), args.Error(1)
}

func (m *mockHistory) MarkRunning(ctx context.Context, id ulid.ULID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockHistory) MarkCompleted(ctx context.Context, id ulid.ULID, rowCount int, outputPath string) error {
	return m.Called(ctx, id, rowCount, outputPath).Error(0)
}

func (m *mockHistory) MarkFailed(ctx context.Context, id ulid.ULID, cause error) error {
	return m.Called(ctx, id, cause).Error(0)
}

func (m *mockHistory) Get(ctx context.Context, id ulid.ULID) (*run.GenerationRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*run.GenerationRun), args.Error(1)
}

func (m *mockHistory) List(ctx context.Context, filters run.ListFilters) ([]*run.GenerationRun, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*run.GenerationRun), args.Get(1).(int64), args.Error(2)
}

type fakeDatasetCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func newFakeDatasetCache() *fakeDatasetCache {
	return &fakeDatasetCache{store: make(map[string][]byte)}
}

func (f *fakeDatasetCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.gets++
	v, ok := f.store[key]
	return v, ok, nil
}

func (f *fakeDatasetCache) Set(ctx context.Context, key string, value []byte) error {
	f.sets++
	f.store[key] = value
	return nil
}

func (f *fakeDatasetCache) Close() error { return nil }

func smallConfig() generator.GeneratorConfig {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return generator.GeneratorConfig{
		Seed:       7,
		DomainType: "telecom",
		TimeWindow: generator.TimeWindow{Start: start, End: start.Add(4 * time.Minute), GranularityMinutes: 1},
		Entities: []generator.Entity{
			{
				ID: "cell1",
				Metrics: []generator.Metric{
					{Name: "latency", Distribution: generator.DistributionSpec{Kind: generator.DistributionNormal, Mean: 10}},
				},
			},
		},
	}
}

func newTestHandler(t *testing.T) (*Handler, *mockHistory, string) {
	t.Helper()
	dir := t.TempDir()
	hist := new(mockHistory)
	h := NewHandler(hist, nil, nil, dir, slog.Default())
	return h, hist, dir
}

func TestGenerate_WritesOutputAndMarksCompleted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, hist, _ := newTestHandler(t)

	r := &run.GenerationRun{ID: ulid.New(), Status: run.StatusPending}
	hist.On("Submit", mock.Anything, mock.Anything, "csv").Return(r, nil)
	hist.On("MarkRunning", mock.Anything, r.ID).Return(nil)
	hist.On("MarkCompleted", mock.Anything, r.ID, 5, mock.AnythingOfType("string")).Return(nil)

	body, _ := json.Marshal(generateRequest{GeneratorConfig: smallConfig(), Format: "csv"})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	h.Generate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp generateResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.RowCount)
	assert.NotEmpty(t, resp.Preview)
	hist.AssertExpectations(t)
}

func TestGenerate_RejectsInvalidConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newTestHandler(t)

	cfg := smallConfig()
	cfg.Entities[0].Metrics[0].Distribution.Kind = generator.DistributionGamma
	cfg.Entities[0].Metrics[0].Distribution.Mean = -1
	body, _ := json.Marshal(generateRequest{GeneratorConfig: cfg, Format: "csv"})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_ReusesCachedSerializedOutput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	hist := new(mockHistory)
	dc := newFakeDatasetCache()
	h := NewHandler(hist, dc, nil, dir, slog.Default())

	cfg := smallConfig()
	runRequest := func() {
		r := &run.GenerationRun{ID: ulid.New(), Status: run.StatusPending}
		hist.On("Submit", mock.Anything, mock.Anything, "csv").Return(r, nil).Once()
		hist.On("MarkRunning", mock.Anything, r.ID).Return(nil).Once()
		hist.On("MarkCompleted", mock.Anything, r.ID, 5, mock.AnythingOfType("string")).Return(nil).Once()

		body, _ := json.Marshal(generateRequest{GeneratorConfig: cfg, Format: "csv"})
		req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		h.Generate(c)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	runRequest()
	assert.Equal(t, 1, dc.sets)
	runRequest()
	assert.Equal(t, 1, dc.sets, "second identical request should hit the cache instead of re-serializing")
	hist.AssertExpectations(t)
}

func TestValidate_ReturnsEstimateForValidConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newTestHandler(t)

	body, _ := json.Marshal(smallConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	h.Validate(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDownload_StreamsCompletedRunFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, hist, dir := newTestHandler(t)

	outputPath := dir + "/out.csv"
	assert.NoError(t, os.WriteFile(outputPath, []byte("timestamp\n"), 0o644))

	r := &run.GenerationRun{ID: ulid.New(), Status: run.StatusCompleted, OutputPath: outputPath}
	hist.On("Get", mock.Anything, r.ID).Return(r, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/download/"+r.ID.String(), nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "runID", Value: r.ID.String()}}
	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDownload_RejectsUnfinishedRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, hist, _ := newTestHandler(t)

	r := &run.GenerationRun{ID: ulid.New(), Status: run.StatusRunning}
	hist.On("Get", mock.Anything, r.ID).Return(r, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/download/"+r.ID.String(), nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "runID", Value: r.ID.String()}}
	h.Download(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
