// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks gateway HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total gateway HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TurnsTotal tracks completed conversational turns by mode and outcome.
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_turns_total",
			Help: "Total conversational turns",
		},
		[]string{"mode", "status"},
	)

	// TransportErrorsTotal tracks backend transport failures by kind.
	TransportErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_transport_errors_total",
			Help: "Total backend transport errors",
		},
		[]string{"kind"},
	)

	// BackendRequestDuration tracks backend chat request duration.
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Backend chat request duration",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"status"},
	)

	// ResultItemsTotal tracks search result items received by category.
	ResultItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_result_items_total",
			Help: "Total search result items received",
		},
		[]string{"category"},
	)

	// SessionsActive tracks live gateway sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_sessions_active",
			Help: "Number of live gateway sessions",
		},
	)

	// SSEConnectionsActive tracks active SSE connections.
	SSEConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_connections_active",
			Help: "Number of active SSE connections",
		},
	)
)

// RecordRequest records metrics for a gateway HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordBackendRequest records metrics for one backend chat request.
func RecordBackendRequest(status string, duration float64) {
	BackendRequestDuration.WithLabelValues(status).Observe(duration)
}

// IncrementSSEConnections increments the active SSE connection count.
func IncrementSSEConnections() {
	SSEConnectionsActive.Inc()
}

// DecrementSSEConnections decrements the active SSE connection count.
func DecrementSSEConnections() {
	SSEConnectionsActive.Dec()
}
