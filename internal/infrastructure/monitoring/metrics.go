package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// AI pipeline metrics
	AIRequests       *prometheus.CounterVec
	ProviderCalls    *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec

	// Search enrichment metrics
	SearchTriggered prometheus.Counter
	SearchFailures  prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector backed by its own registry,
// so collectors can be created independently (including in tests).
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		startTime: time.Now(),
		registry:  registry,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		// AI pipeline metrics
		AIRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_ai_requests_total",
				Help: "Total number of AI pipeline requests",
			},
			[]string{"operation", "status"},
		),
		ProviderCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_ai_provider_calls_total",
				Help: "Total number of outbound provider calls",
			},
			[]string{"provider", "method", "status"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_ai_provider_duration_seconds",
				Help:    "Outbound provider call duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"provider", "method"},
		),

		// Search enrichment metrics
		SearchTriggered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "backend_ai_search_triggered_total",
				Help: "Total number of questions that triggered web search enrichment",
			},
		),
		SearchFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "backend_ai_search_failures_total",
				Help: "Total number of swallowed web search failures",
			},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "backend_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// Handler returns the Prometheus exposition handler for this collector
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAIRequest records a pipeline request outcome
func (m *Metrics) RecordAIRequest(operation, status string) {
	m.AIRequests.WithLabelValues(operation, status).Inc()
}

// RecordProviderCall records an outbound provider call
func (m *Metrics) RecordProviderCall(provider, method, status string, duration time.Duration) {
	m.ProviderCalls.WithLabelValues(provider, method, status).Inc()
	m.ProviderDuration.WithLabelValues(provider, method).Observe(duration.Seconds())
}

// IncSearchTriggered increments the search trigger counter
func (m *Metrics) IncSearchTriggered() {
	m.SearchTriggered.Inc()
}

// IncSearchFailures increments the swallowed search failure counter
func (m *Metrics) IncSearchFailures() {
	m.SearchFailures.Inc()
}
