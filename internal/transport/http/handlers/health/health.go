// Package health exposes a liveness check.
package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler serves the health endpoints.
type Handler struct {
	startTime time.Time
}

// NewHandler returns a health Handler; startTime anchors the reported uptime.
func NewHandler() *Handler {
	return &Handler{startTime: time.Now()}
}

// Response is the JSON body for /health.
type Response struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Check reports basic liveness: the process is up and serving requests.
func (h *Handler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Status: "healthy", Uptime: time.Since(h.startTime).String()})
}
