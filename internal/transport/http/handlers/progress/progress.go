// Package progress streams per-stage row-count ticks for a generation
// run over a websocket connection, so a caller driving a long window
// doesn't have to wait on the blocking POST /api/generate response.
package progress

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	domain "synthgen/internal/core/domain/generator"
	generatorSvc "synthgen/internal/core/services/generator"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Progress streaming carries no auth surface and no cookies; any
	// origin may open a socket against this endpoint.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// stageMessage is one JSON frame written to the socket as the pipeline
// advances through a stage.
type stageMessage struct {
	Stage    string `json:"stage"`
	Rows     int    `json:"rows"`
	Done     bool   `json:"done"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Handler serves the generation progress websocket endpoint.
type Handler struct {
	logger *slog.Logger
}

// NewHandler builds a progress Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// errorMessage is written back and the socket closed when the client's
// first frame is not a config the pipeline can run.
type errorMessage struct {
	Error string `json:"error"`
}

// Stream upgrades the connection, reads a GeneratorConfig as the
// client's first text frame, then runs the pipeline through
// generator.GenerateWithProgress, emitting a stageMessage after each stage
// completes. GenerateWithProgress runs the same stage sequence and RNG
// wiring as Generate, with a callback after every stage. The config arrives post-upgrade, as a
// websocket frame, rather than pre-upgrade request body, since a
// browser's WebSocket API cannot attach one to the handshake request.
func (h *Handler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	var cfg domain.GeneratorConfig
	if err := conn.ReadJSON(&cfg); err != nil {
		_ = conn.WriteJSON(errorMessage{Error: "invalid config frame: " + err.Error()})
		return
	}
	if _, err := cfg.Validate(); err != nil {
		_ = conn.WriteJSON(errorMessage{Error: err.Error()})
		return
	}

	start := time.Now()
	ds := generatorSvc.GenerateWithProgress(cfg, func(stage string, rows int) {
		msg := stageMessage{Stage: stage, Rows: rows, ElapsedMs: time.Since(start).Milliseconds()}
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Debug("progress write failed, client likely disconnected", "error", err)
		}
	})

	final, _ := json.Marshal(stageMessage{Stage: "complete", Rows: ds.Rows(), Done: true, ElapsedMs: time.Since(start).Milliseconds()})
	_ = conn.WriteMessage(websocket.TextMessage, final)
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
