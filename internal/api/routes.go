package api

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/mswatii/cs2-tradeup/internal/catalog"
	"github.com/mswatii/cs2-tradeup/internal/logger"
	"github.com/mswatii/cs2-tradeup/internal/metrics"
	"github.com/mswatii/cs2-tradeup/internal/session"
)

const (
	headerRequestID = "X-Request-ID"
	requestCtxKey   = "requestCtx"
)

// Handler represents the API handler
type Handler struct {
	catalog   *catalog.Store
	sessions  *session.Store
	validator *Validator
	webDir    string
	metrics   fasthttp.RequestHandler
}

// NewHandler creates a new API handler
func NewHandler(catalogs *catalog.Store, sessions *session.Store, webDir string) *Handler {
	return &Handler{
		catalog:   catalogs,
		sessions:  sessions,
		validator: NewValidator(),
		webDir:    webDir,
		metrics:   fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}
}

// HandleRequest routes every request
func (h *Handler) HandleRequest(ctx *fasthttp.RequestCtx) {
	requestID := string(ctx.Request.Header.Peek(headerRequestID))
	if requestID == "" {
		requestID = logger.GenerateRequestID()
	}
	ctx.SetUserValue(requestCtxKey, logger.WithRequestID(context.Background(), requestID))
	ctx.Response.Header.Set(headerRequestID, requestID)
	defer recoverPanic(ctx, requestID)

	path := string(ctx.Path())

	// Web routes first
	if path == "/" || path == "/index.html" {
		setRoute(ctx, "/")
		h.handleIndex(ctx)
		return
	}
	if strings.HasPrefix(path, "/static/") {
		setRoute(ctx, "/static")
		h.handleStatic(ctx)
		return
	}

	switch {
	case path == "/metrics":
		setRoute(ctx, path)
		h.metrics(ctx)
	case path == "/api/health":
		setRoute(ctx, path)
		h.handleHealth(ctx)
	case path == "/api/catalog":
		setRoute(ctx, path)
		if allowMethod(ctx, fasthttp.MethodGet) {
			h.handleCatalog(ctx)
		}
	case path == "/api/catalog/reload":
		setRoute(ctx, path)
		if allowMethod(ctx, fasthttp.MethodPost) {
			h.handleReload(ctx)
		}
	case path == "/api/collections":
		setRoute(ctx, path)
		if allowMethod(ctx, fasthttp.MethodGet) {
			h.handleCollections(ctx)
		}
	case path == "/api/sessions":
		setRoute(ctx, path)
		if allowMethod(ctx, fasthttp.MethodPost) {
			h.handleCreateSession(ctx)
		}
	case strings.HasPrefix(path, "/api/sessions/"):
		h.routeSession(ctx, strings.Split(strings.TrimPrefix(path, "/api/sessions/"), "/"))
	default:
		writeCodeError(ctx, fasthttp.StatusNotFound, CodeNotFound, "Not Found")
	}
}

// routeSession dispatches /api/sessions/{id}/... by segment count.
func (h *Handler) routeSession(ctx *fasthttp.RequestCtx, segs []string) {
	id := segs[0]
	if id == "" {
		writeCodeError(ctx, fasthttp.StatusNotFound, CodeNotFound, "Not Found")
		return
	}

	switch {
	case len(segs) == 1:
		setRoute(ctx, "/api/sessions/{id}")
		switch string(ctx.Method()) {
		case fasthttp.MethodGet:
			h.handleGetSession(ctx, id)
		case fasthttp.MethodDelete:
			h.handleDeleteSession(ctx, id)
		default:
			methodNotAllowed(ctx, fasthttp.MethodGet, fasthttp.MethodDelete)
		}
	case len(segs) == 2 && segs[1] == "items":
		setRoute(ctx, "/api/sessions/{id}/items")
		if allowMethod(ctx, fasthttp.MethodPost) {
			h.handleAddItem(ctx, id)
		}
	case len(segs) == 3 && segs[1] == "items":
		setRoute(ctx, "/api/sessions/{id}/items/{position}")
		if allowMethod(ctx, fasthttp.MethodDelete) {
			h.handleRemoveItem(ctx, id, segs[2])
		}
	case len(segs) == 4 && segs[1] == "items" && segs[3] == "wear":
		setRoute(ctx, "/api/sessions/{id}/items/{position}/wear")
		if allowMethod(ctx, fasthttp.MethodPut) {
			h.handleSetWear(ctx, id, segs[2])
		}
	case len(segs) == 2 && segs[1] == "clear":
		setRoute(ctx, "/api/sessions/{id}/clear")
		if allowMethod(ctx, fasthttp.MethodPost) {
			h.handleClear(ctx, id)
		}
	case len(segs) == 2 && segs[1] == "resolve":
		setRoute(ctx, "/api/sessions/{id}/resolve")
		if allowMethod(ctx, fasthttp.MethodPost) {
			h.handleResolve(ctx, id)
		}
	case len(segs) == 2 && segs[1] == "simulate":
		setRoute(ctx, "/api/sessions/{id}/simulate")
		if allowMethod(ctx, fasthttp.MethodPost) {
			h.handleSimulate(ctx, id)
		}
	default:
		writeCodeError(ctx, fasthttp.StatusNotFound, CodeNotFound, "Not Found")
	}
}

// handleHealth handles the health check endpoint
func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	response := map[string]any{
		"status":        "ok",
		"time":          time.Now().Format(time.RFC3339),
		"catalog_items": h.catalog.Current().Len(),
		"sessions":      h.sessions.Len(),
	}
	writeResponse(ctx, fasthttp.StatusOK, response)
}

// recoverPanic logs a handler panic and answers 500.
func recoverPanic(ctx *fasthttp.RequestCtx, requestID string) {
	r := recover()
	if r == nil {
		return
	}
	logFor(ctx).Error("Handler panicked", "path", string(ctx.Path()), "panic", r, "stack", string(debug.Stack()))
	ctx.Response.Reset()
	ctx.Response.Header.Set(headerRequestID, requestID)
	writeCodeError(ctx, fasthttp.StatusInternalServerError, CodeInternal, "Internal Server Error")
}

func setRoute(ctx *fasthttp.RequestCtx, route string) {
	ctx.SetUserValue(metrics.RouteKey, route)
}

func allowMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	methodNotAllowed(ctx, method)
	return false
}

func methodNotAllowed(ctx *fasthttp.RequestCtx, allowed ...string) {
	ctx.Response.Header.Set(fasthttp.HeaderAllow, strings.Join(allowed, ", "))
	writeCodeError(ctx, fasthttp.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed")
}

// requestContext returns the request-scoped context carrying the request ID.
func requestContext(ctx *fasthttp.RequestCtx) context.Context {
	if rc, ok := ctx.UserValue(requestCtxKey).(context.Context); ok {
		return rc
	}
	return context.Background()
}

func logFor(ctx *fasthttp.RequestCtx) *slog.Logger {
	return logger.FromContext(requestContext(ctx))
}
