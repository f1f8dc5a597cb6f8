package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric recorded by the DeNovo-Designer binaries.
type AppMetrics struct {
	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Analysis runs
	AnalysesTotal       CounterVec
	AnalysisDuration    HistogramVec
	CandidatesDelivered HistogramVec
	RunsTruncatedTotal  CounterVec

	// Projection
	CandidateLookupsTotal CounterVec
	ClassificationsTotal  CounterVec

	// Exports
	ExportsTotal CounterVec
	ExportBytes  HistogramVec

	// Infrastructure
	CacheHitsTotal       CounterVec
	CacheMissesTotal     CounterVec
	EventsPublishedTotal CounterVec
	EventsConsumedTotal  CounterVec
	ArtifactsStoredTotal CounterVec

	// Health
	ServiceUptime     GaugeVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

var (
	DefaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultAnalysisDurationBuckets = []float64{.01, .05, .1, .5, 1, 2, 5, 10}
	DefaultCountBuckets            = []float64{1, 2, 5, 10, 50, 100}
	DefaultSizeBuckets             = []float64{256, 1024, 4096, 16384, 65536, 262144}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests")

	m.AnalysesTotal = collector.RegisterCounter("analyses_total", "Analysis submissions", "status")
	m.AnalysisDuration = collector.RegisterHistogram("analysis_duration_seconds", "Analysis run preparation time", DefaultAnalysisDurationBuckets)
	m.CandidatesDelivered = collector.RegisterHistogram("candidates_delivered", "Candidates delivered per analysis run", DefaultCountBuckets)
	m.RunsTruncatedTotal = collector.RegisterCounter("runs_truncated_total", "Runs whose requested count exceeded the fixture", "count_range")

	m.CandidateLookupsTotal = collector.RegisterCounter("candidate_lookups_total", "Candidate lookups by ID", "result")
	m.ClassificationsTotal = collector.RegisterCounter("classifications_total", "Druggability classifications", "tier")

	m.ExportsTotal = collector.RegisterCounter("exports_total", "Result exports", "format", "status")
	m.ExportBytes = collector.RegisterHistogram("export_bytes", "Export payload size", DefaultSizeBuckets, "format")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.EventsPublishedTotal = collector.RegisterCounter("events_published_total", "Events published", "topic", "status")
	m.EventsConsumedTotal = collector.RegisterCounter("events_consumed_total", "Events consumed", "topic", "status")
	m.ArtifactsStoredTotal = collector.RegisterCounter("artifacts_stored_total", "Objects written to artifact storage", "kind", "status")

	m.ServiceUptime = collector.RegisterGauge("service_uptime_seconds", "Service uptime", "service")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by component and code", "component", "code")

	return m
}

func status(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// Helpers below accept a nil *AppMetrics so that callers built without a
// collector (tests, the CLI) need no guards.

func RecordHTTPRequest(m *AppMetrics, method, route string, statusCode int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordAnalysis(m *AppMetrics, d time.Duration, delivered int, truncated bool, countRange string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.AnalysesTotal.WithLabelValues("rejected").Inc()
		return
	}
	m.AnalysesTotal.WithLabelValues("accepted").Inc()
	m.AnalysisDuration.WithLabelValues().Observe(d.Seconds())
	m.CandidatesDelivered.WithLabelValues().Observe(float64(delivered))
	if truncated {
		m.RunsTruncatedTotal.WithLabelValues(countRange).Inc()
	}
}

func RecordLookup(m *AppMetrics, found bool) {
	if m == nil {
		return
	}
	result := "found"
	if !found {
		result = "not_found"
	}
	m.CandidateLookupsTotal.WithLabelValues(result).Inc()
}

func RecordClassification(m *AppMetrics, tier string) {
	if m == nil {
		return
	}
	m.ClassificationsTotal.WithLabelValues(tier).Inc()
}

func RecordExport(m *AppMetrics, format string, size int, err error) {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues(format, status(err)).Inc()
	if err == nil {
		m.ExportBytes.WithLabelValues(format).Observe(float64(size))
	}
}

func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordEventPublished(m *AppMetrics, topic string, err error) {
	if m == nil {
		return
	}
	m.EventsPublishedTotal.WithLabelValues(topic, status(err)).Inc()
}

func RecordEventConsumed(m *AppMetrics, topic string, err error) {
	if m == nil {
		return
	}
	m.EventsConsumedTotal.WithLabelValues(topic, status(err)).Inc()
}

func RecordArtifact(m *AppMetrics, kind string, err error) {
	if m == nil {
		return
	}
	m.ArtifactsStoredTotal.WithLabelValues(kind, status(err)).Inc()
}

func RecordError(m *AppMetrics, component, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}

// SetHealth records component health as 1 (up) or 0 (down).
func SetHealth(m *AppMetrics, component string, up bool) {
	if m == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}

//Personal.AI order the ending
