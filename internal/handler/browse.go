// Package handler provides the gin handlers for the dirview HTTP API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CageChen/dirview/internal/logging"
	"github.com/CageChen/dirview/internal/markdown"
	"github.com/CageChen/dirview/internal/metrics"
	"github.com/CageChen/dirview/internal/resolver"
)

// RenderHTML is the only supported value of the render query parameter.
const RenderHTML = "html"

const msgInternal = "internal server error"

// BrowseHandler serves directory listings and file contents.
type BrowseHandler struct {
	resolver   *resolver.Resolver
	renderer   *markdown.Renderer
	metrics    *metrics.Metrics
	isMarkdown func(path string) bool
}

// NewBrowseHandler creates a browse handler. isMarkdown decides which files
// may be rendered with ?render=html.
func NewBrowseHandler(r *resolver.Resolver, m *metrics.Metrics, isMarkdown func(string) bool) *BrowseHandler {
	return &BrowseHandler{
		resolver:   r,
		renderer:   markdown.NewRenderer(),
		metrics:    m,
		isMarkdown: isMarkdown,
	}
}

// Register mounts the handler on every GET path.
func (h *BrowseHandler) Register(r gin.IRoutes) {
	r.GET("/*path", h.Get)
}

// Get resolves the request path: "/" lists the root, anything else is
// listed, read, or reported missing.
func (h *BrowseHandler) Get(c *gin.Context) {
	render := c.Query("render")
	if render != "" && render != RenderHTML {
		h.reject(c, "unsupported render mode: "+render)
		return
	}

	relativePath := c.Param("path")
	res, err := h.resolver.Resolve(c.Request.Context(), relativePath)
	if err != nil {
		h.fail(c, err)
		return
	}

	if render == RenderHTML && res.IsOK() {
		content, ok := res.Envelope.Payload.(string)
		if !ok || !h.isMarkdown(relativePath) {
			h.reject(c, "render=html is only supported for markdown files")
			return
		}
		doc, err := h.renderer.Render([]byte(content))
		if err != nil {
			h.fail(c, err)
			return
		}
		res = resolver.OK(doc)
	}

	h.respond(c, res)
}

// reject answers 400 for a malformed request without touching the filesystem metrics.
func (h *BrowseHandler) reject(c *gin.Context, message string) {
	res := resolver.Fail(http.StatusBadRequest, message)
	c.JSON(res.Code, res.Envelope)
}

func (h *BrowseHandler) respond(c *gin.Context, res resolver.Result) {
	switch payload := res.Envelope.Payload.(type) {
	case []resolver.Entry:
		h.metrics.RecordListing(len(payload))
	case string:
		h.metrics.RecordFile(len(payload))
	case *markdown.Document:
		h.metrics.RecordResolution(metrics.KindFile)
	default:
		switch res.Code {
		case http.StatusNotFound:
			h.metrics.RecordResolution(metrics.KindNotFound)
		case http.StatusBadRequest:
			h.metrics.RecordResolution(metrics.KindBadRoot)
		}
	}
	c.JSON(res.Code, res.Envelope)
}

// fail reports an unrecoverable per-request error. The cause is logged,
// the client only sees a generic message.
func (h *BrowseHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	logging.WithContext(c.Request.Context()).Error("resolve failed",
		zap.String("path", c.Param("path")), zap.Error(err))
	h.metrics.RecordResolution(metrics.KindFailure)
	res := resolver.Fail(http.StatusInternalServerError, msgInternal)
	c.JSON(res.Code, res.Envelope)
}
