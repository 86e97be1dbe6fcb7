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

// Realtime metric names
const (
	MetricNameRealtimeConnections   = "realtime_connections"
	MetricNameRealtimeMessagesTotal = "realtime_messages_total"
	MetricNameRealtimeDroppedTotal  = "realtime_messages_dropped_total"
)

// Business metric names
const (
	MetricNameWalletTransactions = "wallet_transactions_total"
	MetricNameWalletAmount       = "wallet_amount_total"
	MetricNameLoginsTotal        = "logins_total"
	MetricNameRateLimitedTotal   = "rate_limited_total"
	MetricNameSessionsPurged     = "sessions_purged_total"
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

// Realtime metric help text
const (
	HelpTextRealtimeConnections   = "Current number of realtime connections"
	HelpTextRealtimeMessagesTotal = "Total number of realtime messages"
	HelpTextRealtimeDroppedTotal  = "Total number of realtime messages dropped on full buffers"
)

// Business metric help text
const (
	HelpTextWalletTransactions = "Total number of balance transactions recorded"
	HelpTextWalletAmount       = "Total amount moved by balance transactions"
	HelpTextLoginsTotal        = "Total number of login attempts"
	HelpTextRateLimitedTotal   = "Total number of requests rejected by a rate limiter"
	HelpTextSessionsPurged     = "Total number of expired sessions purged"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelKind      = "kind"
	LabelDirection = "direction"
	LabelResult    = "result"
	LabelLimiter   = "limiter"
)

// Label values
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"

	ResultSuccess = "success"
	ResultFailure = "failure"

	LimiterLogin    = "login"
	LimiterWithdraw = "withdraw"
)

// ============================================================================
// Event Payload Field Names
// ============================================================================

// Field names used when extracting values from map payloads
const (
	PayloadFieldTransaction = "transaction"
	PayloadFieldCount       = "count"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected type"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
