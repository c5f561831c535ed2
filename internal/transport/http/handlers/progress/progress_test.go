package progress

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	generator "synthgen/internal/core/domain/generator"
)

func smallConfig() generator.GeneratorConfig {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return generator.GeneratorConfig{
		Seed:       1,
		DomainType: "telecom",
		TimeWindow: generator.TimeWindow{Start: start, End: start.Add(2 * time.Minute), GranularityMinutes: 1},
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

func dialTestServer(t *testing.T, h *Handler) *websocket.Conn {
	t.Helper()
	router := gin.New()
	router.GET("/progress", h.Stream)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/progress"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStream_EmitsStageMessagesThenCompletes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conn := dialTestServer(t, NewHandler(slog.Default()))

	require.NoError(t, conn.WriteJSON(smallConfig()))

	sawComplete := false
	for i := 0; i < 20; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var msg stageMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Done {
			sawComplete = true
			break
		}
	}
	require.True(t, sawComplete, "expected a done=true completion frame")
}

func TestStream_InvalidConfigReportsError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conn := dialTestServer(t, NewHandler(slog.Default()))

	cfg := smallConfig()
	cfg.Entities = nil
	require.NoError(t, conn.WriteJSON(cfg))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg errorMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	require.NotEmpty(t, msg.Error)
}
