package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "tradeup_http_requests_total"
	MetricNameHTTPRequestDuration  = "tradeup_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "tradeup_http_requests_in_flight"
)

// Trade-up metric names
const (
	MetricNameResolutions        = "tradeup_resolutions_total"
	MetricNameSelectionMutations = "tradeup_selection_mutations_total"
	MetricNameSimulatedDraws     = "tradeup_simulated_draws_total"
	MetricNameActiveSessions     = "tradeup_sessions_active"
)

// Catalog metric names
const (
	MetricNameCatalogReloads = "tradeup_catalog_reloads_total"
	MetricNameCatalogItems   = "tradeup_catalog_items"
)

// Help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextResolutions        = "Trade-up resolutions by result"
	HelpTextSelectionMutations = "Selection mutations by operation and result"
	HelpTextSimulatedDraws     = "Total number of simulated trade-up draws"
	HelpTextActiveSessions     = "Number of live trade-up sessions"

	HelpTextCatalogReloads = "Catalog reloads by result"
	HelpTextCatalogItems   = "Number of items in the current catalog"
)

// Label names
const (
	LabelMethod    = "method"
	LabelRoute     = "route"
	LabelStatus    = "status"
	LabelResult    = "result"
	LabelOperation = "operation"
)

// Label values
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"

	OpAdd     = "add"
	OpRemove  = "remove"
	OpSetWear = "set_wear"
	OpClear   = "clear"
)

// HTTPLatencyBuckets are tuned for in-memory handlers.
var HTTPLatencyBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
