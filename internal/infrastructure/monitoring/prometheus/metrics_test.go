package prometheus

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	c := newTestCollector(t)
	return NewAppMetrics(c), c
}

func TestNewAppMetrics_AllMetricsRegistered(t *testing.T) {
	m, _ := newTestAppMetrics(t)
	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.AnalysesTotal)
	assert.NotNil(t, m.ExportsTotal)
	assert.NotNil(t, m.EventsPublishedTotal)
	assert.NotNil(t, m.ArtifactsStoredTotal)
}

func TestRecordHTTPRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordHTTPRequest(m, "GET", "/api/v1/candidates/{id}", 200, 100*time.Millisecond)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_http_requests_total{method="GET",route="/api/v1/candidates/{id}",status_code="200"} 1`)
	assert.Contains(t, out, `test_unit_http_request_duration_seconds_count{method="GET",route="/api/v1/candidates/{id}"} 1`)
}

func TestRecordAnalysis(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordAnalysis(m, time.Millisecond, 10, true, "10-50", nil)
	RecordAnalysis(m, time.Millisecond, 0, false, "", errors.New("no target"))

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_analyses_total{status="accepted"} 1`)
	assert.Contains(t, out, `test_unit_analyses_total{status="rejected"} 1`)
	assert.Contains(t, out, `test_unit_runs_truncated_total{count_range="10-50"} 1`)
	assert.Contains(t, out, `test_unit_candidates_delivered_sum 10`)
}

func TestRecordLookupAndClassification(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordLookup(m, true)
	RecordLookup(m, false)
	RecordClassification(m, "high")

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_candidate_lookups_total{result="found"} 1`)
	assert.Contains(t, out, `test_unit_candidate_lookups_total{result="not_found"} 1`)
	assert.Contains(t, out, `test_unit_classifications_total{tier="high"} 1`)
}

func TestRecordExport(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordExport(m, "csv", 512, nil)
	RecordExport(m, "xlsx", 0, errors.New("disk full"))

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_exports_total{format="csv",status="success"} 1`)
	assert.Contains(t, out, `test_unit_exports_total{format="xlsx",status="failure"} 1`)
	assert.Contains(t, out, `test_unit_export_bytes_sum{format="csv"} 512`)
}

func TestRecordInfrastructure(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordCacheAccess(m, "runs", true)
	RecordCacheAccess(m, "runs", false)
	RecordEventPublished(m, "denovo.analysis.completed", nil)
	RecordEventConsumed(m, "denovo.analysis.completed", errors.New("boom"))
	RecordArtifact(m, "report", nil)
	RecordError(m, "http", "CAND_001")
	SetHealth(m, "redis", true)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_cache_hits_total{cache="runs"} 1`)
	assert.Contains(t, out, `test_unit_cache_misses_total{cache="runs"} 1`)
	assert.Contains(t, out, `test_unit_events_published_total{status="success",topic="denovo.analysis.completed"} 1`)
	assert.Contains(t, out, `test_unit_events_consumed_total{status="failure",topic="denovo.analysis.completed"} 1`)
	assert.Contains(t, out, `test_unit_artifacts_stored_total{kind="report",status="success"} 1`)
	assert.Contains(t, out, `test_unit_errors_total{code="CAND_001",component="http"} 1`)
	assert.Contains(t, out, `test_unit_health_check_status{component="redis"} 1`)
}

func TestRecorders_NilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest(nil, "GET", "/", 200, time.Millisecond)
		RecordAnalysis(nil, 0, 0, false, "", nil)
		RecordLookup(nil, true)
		RecordClassification(nil, "low")
		RecordExport(nil, "csv", 1, nil)
		RecordCacheAccess(nil, "runs", true)
		RecordEventPublished(nil, "t", nil)
		RecordEventConsumed(nil, "t", nil)
		RecordArtifact(nil, "csv", nil)
		RecordError(nil, "x", "y")
		SetHealth(nil, "x", false)
	})
}

func TestConcurrentMetricRecording(t *testing.T) {
	m, c := newTestAppMetrics(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				RecordHTTPRequest(m, "GET", "/healthz", 200, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.Contains(t, scrapeMetrics(t, c), `test_unit_http_requests_total{method="GET",route="/healthz",status_code="200"} 1000`)
}

//Personal.AI order the ending
