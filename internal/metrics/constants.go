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

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Gacha metric names
const (
	MetricNamePullsTotal          = "gacha_pulls_total"
	MetricNameJackpotsTotal       = "gacha_jackpots_total"
	MetricNameClaimsTotal         = "gacha_claims_total"
	MetricNameCoinsAwarded        = "gacha_coins_awarded_total"
	MetricNameAchievementsGranted = "gacha_achievements_granted_total"
	MetricNameCatalogItems        = "gacha_catalog_items"
	MetricNameUsers               = "gacha_users"
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

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Gacha metric help text
const (
	HelpTextPullsTotal          = "Total number of committed pulls by drawn rarity"
	HelpTextJackpotsTotal       = "Total number of legendary-or-higher pulls"
	HelpTextClaimsTotal         = "Total number of reward claims by period and result"
	HelpTextCoinsAwarded        = "Total coins paid out by reward claims"
	HelpTextAchievementsGranted = "Total number of achievement grants by achievement"
	HelpTextCatalogItems        = "Number of items in the catalog"
	HelpTextUsers               = "Number of known users"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelRarity      = "rarity"
	LabelPeriod      = "period"
	LabelResult      = "result"
	LabelAchievement = "achievement"
)

// Claim results
const (
	ClaimResultClaimed        = "claimed"
	ClaimResultAlreadyClaimed = "already_claimed"
)

// UnmatchedRoute labels requests no route pattern matched
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
