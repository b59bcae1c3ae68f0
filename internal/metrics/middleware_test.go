package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func serve(handler fasthttp.RequestHandler, method, path string) {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	handler(&ctx)
}

func TestMiddleware_UsesRouteLabel(t *testing.T) {
	handler := Middleware(func(ctx *fasthttp.RequestCtx) {
		ctx.SetUserValue(RouteKey, "/api/sessions/{id}")
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})

	counter := HTTPRequestsTotal.WithLabelValues(fasthttp.MethodGet, "/api/sessions/{id}", "404")
	before := testutil.ToFloat64(counter)

	serve(handler, fasthttp.MethodGet, "/api/sessions/abc")
	serve(handler, fasthttp.MethodGet, "/api/sessions/def")

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	handler := Middleware(func(ctx *fasthttp.RequestCtx) {})

	counter := HTTPRequestsTotal.WithLabelValues(fasthttp.MethodPost, unmatchedRoute, "200")
	before := testutil.ToFloat64(counter)

	serve(handler, fasthttp.MethodPost, "/whatever")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
