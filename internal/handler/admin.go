package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CageChen/dirview/internal/metrics"
	"github.com/CageChen/dirview/internal/resolver"
)

// AdminHandler serves health and metrics on the admin listener.
type AdminHandler struct {
	resolver *resolver.Resolver
	metrics  *metrics.Metrics
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(r *resolver.Resolver, m *metrics.Metrics) *AdminHandler {
	return &AdminHandler{resolver: r, metrics: m}
}

// Healthz reports 200 while the root is a directory and 503 otherwise.
func (h *AdminHandler) Healthz(c *gin.Context) {
	if !h.resolver.RootValid() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"root":   h.resolver.Root(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"root":   h.resolver.Root(),
	})
}

// Metrics serves the Prometheus exposition.
func (h *AdminHandler) Metrics(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
