// Package templates serves the built-in domain templates (telecom,
// finance, healthcare, manufacturing, ecommerce, iot) over HTTP.
package templates

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	generator "synthgen/internal/core/domain/generator"
	"synthgen/pkg/cache"
)

// Handler serves /api/templates and /api/templates/:name.
type Handler struct {
	cache *cache.TemplateCache
}

// NewHandler wires the templates handler atop a TemplateCache.
func NewHandler(tc *cache.TemplateCache) *Handler {
	return &Handler{cache: tc}
}

// List returns the names of every registered domain template.
func (h *Handler) List(c *gin.Context) {
	names := make([]string, 0, len(generator.Templates))
	for name := range generator.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"templates": names})
}

// Get returns one template's GeneratorConfig, with its time window
// anchored to the current time.
func (h *Handler) Get(c *gin.Context) {
	name := c.Param("name")
	cfg, ok := h.cache.Get(name, time.Now())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown template " + name})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
