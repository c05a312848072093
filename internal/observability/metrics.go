// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Turn metrics
	TurnsTotal       *prometheus.CounterVec
	TurnsUnmatched   prometheus.Counter
	TurnLatency      *prometheus.HistogramVec
	WidgetActions    *prometheus.CounterVec
	StoreMutations   *prometheus.CounterVec
	ProviderErrors   *prometheus.CounterVec
	StoreErrors      *prometheus.CounterVec

	// Session metrics
	ActiveSessions   prometheus.Gauge
	MessagesReceived *prometheus.CounterVec

	// Alert delivery metrics
	AlertsPublished prometheus.Counter
	PublishErrors   prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	// Health metrics
	UptimeSeconds prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "token_copilot"
	}

	return &Metrics{
		// Turn metrics
		TurnsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "turns_total",
			Help:      "Total number of conversation turns processed by intent",
		}, []string{"intent"}),
		TurnsUnmatched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "turns_unmatched_total",
			Help:      "Total number of turns that matched no intent rule",
		}),
		TurnLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "turn_latency_seconds",
			Help:      "Turn processing latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"intent"}),
		WidgetActions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "widget_actions_total",
			Help:      "Total number of widget actions dispatched by tag",
		}, []string{"action"}),
		StoreMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "store_mutations_total",
			Help:      "Total number of store mutations applied by kind",
		}, []string{"kind"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "provider_errors_total",
			Help:      "Total number of market data provider errors by call",
		}, []string{"call"}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "errors_total",
			Help:      "Total number of store operation errors",
		}, []string{"store", "operation"}),

		// Session metrics
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "active_sessions",
			Help:      "Number of open chat sessions",
		}),
		MessagesReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "messages_received_total",
			Help:      "Total number of inbound session messages by type",
		}, []string{"type"}),

		// Alert delivery metrics
		AlertsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "alerts_published_total",
			Help:      "Total number of alert configs published to the stream",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "publish_errors_total",
			Help:      "Total number of alert publish failures",
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
		DBConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "connections",
			Help:      "Number of database connections by state",
		}, []string{"database", "state"}),

		// Health metrics
		UptimeSeconds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "uptime_seconds_total",
			Help:      "Total uptime in seconds",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordTurn records a processed turn and its latency.
func RecordTurn(intent string, seconds float64) {
	DefaultMetrics.TurnsTotal.WithLabelValues(intent).Inc()
	DefaultMetrics.TurnLatency.WithLabelValues(intent).Observe(seconds)
	if intent == "UNMATCHED" {
		DefaultMetrics.TurnsUnmatched.Inc()
	}
}

// RecordWidgetAction records a dispatched widget action.
func RecordWidgetAction(action string) {
	DefaultMetrics.WidgetActions.WithLabelValues(action).Inc()
}

// RecordMutation records an applied store mutation.
func RecordMutation(kind string) {
	DefaultMetrics.StoreMutations.WithLabelValues(kind).Inc()
}

// RecordProviderError records a failed market data call.
func RecordProviderError(call string) {
	DefaultMetrics.ProviderErrors.WithLabelValues(call).Inc()
}

// RecordStoreError records a failed store operation.
func RecordStoreError(store, operation string) {
	DefaultMetrics.StoreErrors.WithLabelValues(store, operation).Inc()
}

// RecordSessionOpened increments the active session gauge.
func RecordSessionOpened() {
	DefaultMetrics.ActiveSessions.Inc()
}

// RecordSessionClosed decrements the active session gauge.
func RecordSessionClosed() {
	DefaultMetrics.ActiveSessions.Dec()
}

// RecordMessageReceived records an inbound session message.
func RecordMessageReceived(msgType string) {
	DefaultMetrics.MessagesReceived.WithLabelValues(msgType).Inc()
}

// RecordAlertPublished increments the published alerts counter.
func RecordAlertPublished() {
	DefaultMetrics.AlertsPublished.Inc()
}

// RecordPublishError increments the publish failure counter.
func RecordPublishError() {
	DefaultMetrics.PublishErrors.Inc()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}
