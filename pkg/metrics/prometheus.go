// Package metrics provides Prometheus metrics for the ShopEase dashboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Render metrics
	renders        *prometheus.CounterVec
	renderLatency  prometheus.Histogram
	renderFailures prometheus.Counter
	chartLatency   *prometheus.HistogramVec

	// Extract metrics
	extractRowsLoaded   *prometheus.CounterVec
	extractRowsRejected *prometheus.CounterVec
	extractLoadLatency  *prometheus.HistogramVec

	// Aggregation anomalies
	scoresOutOfDomain *prometheus.CounterVec
	emptyBands        *prometheus.CounterVec
	negativeCounts    *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "shopease",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// name prefixes a metric name with the configured prefix.
func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name(name),
			Help:        help,
			ConstLabels: m.customLabels,
		}
	}
	histogramOpts := func(name, help string, buckets []float64) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name(name),
			Help:        help,
			Buckets:     buckets,
			ConstLabels: m.customLabels,
		}
	}
	gaugeOpts := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name(name),
			Help:        help,
			ConstLabels: m.customLabels,
		}
	}

	m.renders = auto.NewCounterVec(counterOpts("renders_total", "Dashboard renders by section"), []string{"section"})
	m.renderLatency = auto.NewHistogram(histogramOpts("render_latency_milliseconds", "Time to load extracts and build a report", m.histogramBuckets))
	m.renderFailures = auto.NewCounter(counterOpts("render_failures_total", "Renders that failed to load an extract"))
	m.chartLatency = auto.NewHistogramVec(histogramOpts("chart_latency_milliseconds", "Time to draw a chart image", m.histogramBuckets), []string{"chart"})

	m.extractRowsLoaded = auto.NewCounterVec(counterOpts("extract_rows_loaded_total", "Rows accepted from each extract"), []string{"extract"})
	m.extractRowsRejected = auto.NewCounterVec(counterOpts("extract_rows_rejected_total", "Malformed rows rejected from each extract"), []string{"extract"})
	m.extractLoadLatency = auto.NewHistogramVec(histogramOpts("extract_load_latency_milliseconds", "Time to read one extract", m.histogramBuckets), []string{"extract"})

	m.scoresOutOfDomain = auto.NewCounterVec(counterOpts("scores_out_of_domain_total", "Entities excluded because their mean score was outside [1, 5]"), []string{"dataset"})
	m.emptyBands = auto.NewCounterVec(counterOpts("empty_bands_total", "Bands summarized with no entities"), []string{"dataset", "band"})
	m.negativeCounts = auto.NewCounterVec(counterOpts("negative_order_counts_total", "Classified entities carrying a negative order count"), []string{"dataset"})

	m.httpRequests = auto.NewCounterVec(counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets), []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(counterOpts("errors_by_type_total", "Errors by type and severity"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(histogramOpts("error_latency_milliseconds", "Latency of operations that ended in an error", m.histogramBuckets), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool { return m.enabled }

// RecordRender counts a render of section.
func RecordRender(section string) {
	if !globalManager.enabled {
		return
	}
	globalManager.renders.WithLabelValues(section).Inc()
}

// RecordRenderLatency records how long a render took.
func RecordRenderLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.renderLatency.Observe(latencyMs)
}

// RecordRenderFailure increments the failed render counter.
func RecordRenderFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.renderFailures.Inc()
}

// RecordChartLatency records the time spent drawing chart.
func RecordChartLatency(chart string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.chartLatency.WithLabelValues(chart).Observe(latencyMs)
}

// RecordExtractLoad records the outcome of reading one extract.
func RecordExtractLoad(extract string, loaded, rejected int, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.extractRowsLoaded.WithLabelValues(extract).Add(float64(loaded))
	globalManager.extractRowsRejected.WithLabelValues(extract).Add(float64(rejected))
	globalManager.extractLoadLatency.WithLabelValues(extract).Observe(latencyMs)
}

// RecordOutOfDomain adds n excluded entities for dataset.
func RecordOutOfDomain(dataset string, n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.scoresOutOfDomain.WithLabelValues(dataset).Add(float64(n))
}

// RecordEmptyBand counts an empty band for dataset.
func RecordEmptyBand(dataset, band string) {
	if !globalManager.enabled {
		return
	}
	globalManager.emptyBands.WithLabelValues(dataset, band).Inc()
}

// RecordNegativeCounts adds n negative order counts seen in dataset.
func RecordNegativeCounts(dataset string, n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.negativeCounts.WithLabelValues(dataset).Add(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// SetEnabled switches recording of business metrics on or off.
func SetEnabled(enabled bool) {
	globalManager.enabled = enabled
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval is how often system gauges should be refreshed.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}
