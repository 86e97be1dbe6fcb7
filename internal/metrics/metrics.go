package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Realtime Metrics
var (
	RealtimeConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameRealtimeConnections,
			Help: HelpTextRealtimeConnections,
		},
		[]string{LabelKind},
	)

	RealtimeMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRealtimeMessagesTotal,
			Help: HelpTextRealtimeMessagesTotal,
		},
		[]string{LabelDirection, LabelType},
	)

	RealtimeDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRealtimeDroppedTotal,
			Help: HelpTextRealtimeDroppedTotal,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	WalletTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWalletTransactions,
			Help: HelpTextWalletTransactions,
		},
		[]string{LabelType},
	)

	WalletAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWalletAmount,
			Help: HelpTextWalletAmount,
		},
		[]string{LabelType},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLoginsTotal,
			Help: HelpTextLoginsTotal,
		},
		[]string{LabelResult},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRateLimitedTotal,
			Help: HelpTextRateLimitedTotal,
		},
		[]string{LabelLimiter},
	)

	SessionsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsPurged,
			Help: HelpTextSessionsPurged,
		},
	)
)
