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

// Gacha Metrics
var (
	PullsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePullsTotal,
			Help: HelpTextPullsTotal,
		},
		[]string{LabelRarity},
	)

	JackpotsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJackpotsTotal,
			Help: HelpTextJackpotsTotal,
		},
	)

	ClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimsTotal,
			Help: HelpTextClaimsTotal,
		},
		[]string{LabelPeriod, LabelResult},
	)

	CoinsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsAwarded,
			Help: HelpTextCoinsAwarded,
		},
	)

	AchievementsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsGranted,
			Help: HelpTextAchievementsGranted,
		},
		[]string{LabelAchievement},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogItems,
			Help: HelpTextCatalogItems,
		},
	)

	Users = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameUsers,
			Help: HelpTextUsers,
		},
	)
)
