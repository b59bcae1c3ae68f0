package api

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/valyala/fasthttp"
)

var staticContentTypes = map[string]string{
	".css":  "text/css",
	".js":   "application/javascript",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
}

// Serve static files (CSS, JS, images) from <webDir>/static
func (h *Handler) handleStatic(ctx *fasthttp.RequestCtx) {
	rel := strings.TrimPrefix(string(ctx.Path()), "/static/")
	// Clean against a rooted path so ".." cannot climb out of the static dir
	rel = strings.TrimPrefix(filepath.Clean("/"+rel), "/")
	if rel == "" {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString("File not found")
		return
	}

	content, err := os.ReadFile(filepath.Join(h.webDir, "static", rel))
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString("File not found")
		return
	}

	contentType, ok := staticContentTypes[strings.ToLower(filepath.Ext(rel))]
	if !ok {
		contentType = "application/octet-stream"
	}
	ctx.SetContentType(contentType)
	ctx.SetBody(content)
}

// Serve the main HTML page
func (h *Handler) handleIndex(ctx *fasthttp.RequestCtx) {
	content, err := os.ReadFile(filepath.Join(h.webDir, "templates", "index.html"))
	if err != nil {
		logFor(ctx).Warn("Index page unavailable", "error", err)
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString("Web UI not installed")
		return
	}

	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(content)
}
