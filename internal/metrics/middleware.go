package metrics

import (
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
)

// RouteKey is the user value handlers set to the matched route pattern,
// so path parameters do not blow up label cardinality.
const RouteKey = "route"

const unmatchedRoute = "unmatched"

// Middleware collects HTTP request metrics
func Middleware(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()

		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		next(ctx)

		route, _ := ctx.UserValue(RouteKey).(string)
		if route == "" {
			route = unmatchedRoute
		}
		method := string(ctx.Method())

		HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(ctx.Response.StatusCode())).Inc()
		HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
