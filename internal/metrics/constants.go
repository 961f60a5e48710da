package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Draw metric names
const (
	MetricNameDrawsPerformed        = "gacha_draws_performed_total"
	MetricNameRewardsGranted        = "gacha_rewards_granted_total"
	MetricNameCoinsSpent            = "gacha_coins_spent_total"
	MetricNameCoinsRefunded         = "gacha_coins_refunded_total"
	MetricNameOversizedRejected     = "gacha_oversized_rejected_total"
	MetricNameOversizedPartial      = "gacha_oversized_partial_total"
	MetricNameStoreBatchFallbacks   = "store_batch_fallbacks_total"
	MetricNameInventoryValueQueries = "inventory_value_queries_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Draw metric help text
const (
	HelpTextDrawsPerformed        = "Total number of individual gacha draws performed"
	HelpTextRewardsGranted        = "Total number of rewards granted, by kind"
	HelpTextCoinsSpent            = "Total coins debited for draw requests"
	HelpTextCoinsRefunded         = "Total coins refunded after partial oversized draws"
	HelpTextOversizedRejected     = "Total oversized draw requests rejected while the slot was held"
	HelpTextOversizedPartial      = "Total oversized draw requests that ended partially complete"
	HelpTextStoreBatchFallbacks   = "Total batch store operations that fell back to item-by-item mode"
	HelpTextInventoryValueQueries = "Total inventory valuation queries served"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelKind   = "kind"
	LabelPool   = "pool"
)

// HTTPLatencyBuckets covers the expected request latency range.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
