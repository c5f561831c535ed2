// Package metrics exposes the Prometheus scrape endpoint.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves /metrics.
type Handler struct{}

// NewHandler returns a metrics Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Handle writes the current Prometheus registry in text exposition format.
func (h *Handler) Handle(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
