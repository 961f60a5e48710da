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

// Draw Metrics
var (
	DrawsPerformed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDrawsPerformed,
			Help: HelpTextDrawsPerformed,
		},
		[]string{LabelPool},
	)

	RewardsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsGranted,
			Help: HelpTextRewardsGranted,
		},
		[]string{LabelKind},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
	)

	CoinsRefunded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsRefunded,
			Help: HelpTextCoinsRefunded,
		},
	)

	OversizedRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOversizedRejected,
			Help: HelpTextOversizedRejected,
		},
	)

	OversizedPartial = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOversizedPartial,
			Help: HelpTextOversizedPartial,
		},
	)
)

// Store Metrics
var (
	StoreBatchFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStoreBatchFallbacks,
			Help: HelpTextStoreBatchFallbacks,
		},
		[]string{LabelKind},
	)

	InventoryValueQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInventoryValueQueries,
			Help: HelpTextInventoryValueQueries,
		},
	)
)
