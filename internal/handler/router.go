package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CageChen/dirview/internal/logging"
	"github.com/CageChen/dirview/internal/metrics"
)

// NewRouter builds the public engine: every GET path goes to the browse handler.
func NewRouter(browse *BrowseHandler, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Middleware())
	r.Use(m.Middleware())
	r.Use(corsMiddleware())

	browse.Register(r)
	return r
}

// NewAdminRouter builds the admin engine. events may be nil when watching is disabled.
func NewAdminRouter(admin *AdminHandler, events *EventsHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Middleware())

	r.GET("/healthz", admin.Healthz)
	r.GET("/metrics", admin.Metrics)
	if events != nil {
		r.GET("/events", events.HandleWS)
	}
	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
