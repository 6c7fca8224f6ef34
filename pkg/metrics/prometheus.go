// Package metrics provides Prometheus metrics for the drillboard
// companion service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Catalog fetch cycle
	fetchesTotal    prometheus.Counter
	fetchErrors     prometheus.Counter
	staleDropped    prometheus.Counter
	fetchLatency    prometheus.Histogram
	resultCount     prometheus.Gauge
	emptyFilterHits prometheus.Counter

	// Writes to the remote platform
	writesTotal *prometheus.CounterVec

	// Local state
	selectionSize prometheus.Gauge
	signedIn      prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "drillboard",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetches_total",
		Help:      "Total number of catalog fetches issued against the platform",
	})
	m.fetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Total number of catalog fetches that ended in a remote failure",
	})
	m.staleDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stale_responses_dropped_total",
		Help:      "Responses discarded because a newer fetch was issued meanwhile",
	})
	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_milliseconds",
		Help:      "Histogram of catalog fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.resultCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "result_count",
		Help:      "Number of drills in the current ranked result list",
	})
	m.emptyFilterHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_filter_hits_total",
		Help:      "Catalog requests short-circuited because no facet was active",
	})

	m.writesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "writes_total",
		Help:      "Write attempts against the platform by entity and outcome",
	}, []string{"entity", "outcome"})

	m.selectionSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "selection_size",
		Help:      "Number of drills currently selected for the session",
	})
	m.signedIn = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "signed_in",
		Help:      "1 when an authenticated session is active, 0 otherwise",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method, and status code",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "HTTP request duration by endpoint, method, and status code",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Package-level helpers against the global manager.

// RecordFetch increments the fetch counter.
func RecordFetch() {
	globalManager.fetchesTotal.Inc()
}

// RecordFetchError increments the fetch error counter.
func RecordFetchError() {
	globalManager.fetchErrors.Inc()
}

// RecordStaleDropped increments the stale response counter.
func RecordStaleDropped() {
	globalManager.staleDropped.Inc()
}

// RecordFetchLatency records catalog fetch latency in milliseconds.
func RecordFetchLatency(latencyMs float64) {
	globalManager.fetchLatency.Observe(latencyMs)
}

// UpdateResultCount sets the size of the current ranked result list.
func UpdateResultCount(n int) {
	globalManager.resultCount.Set(float64(n))
}

// RecordEmptyFilterHit counts a short-circuited unfiltered request.
func RecordEmptyFilterHit() {
	globalManager.emptyFilterHits.Inc()
}

// RecordWrite counts a platform write attempt.
// entity: drill|comment|rating. outcome: ok|error|blocked.
func RecordWrite(entity, outcome string) {
	globalManager.writesTotal.WithLabelValues(entity, outcome).Inc()
}

// UpdateSelectionSize sets the current selection set size.
func UpdateSelectionSize(n int) {
	globalManager.selectionSize.Set(float64(n))
}

// UpdateSignedIn flags whether a session is active.
func UpdateSignedIn(active bool) {
	if active {
		globalManager.signedIn.Set(1)
		return
	}
	globalManager.signedIn.Set(0)
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
