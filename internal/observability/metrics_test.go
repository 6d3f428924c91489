package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsNilIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/blogs", 200, time.Millisecond)
	m.APIInflightInc()
	m.APIInflightDec()
	m.IncBlogWrite("create")
	m.IncStatsCache(true)
	require.NoError(t, m.WritePrometheus(&bytes.Buffer{}))
}

func TestMetricsObserveAPI(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/blogs", 200, 20*time.Millisecond)
	m.ObserveAPI("GET", "/api/blogs", 200, 20*time.Millisecond)
	m.ObserveAPI("POST", "/api/blogs", 500, time.Second)

	assert.Equal(t, 2.0, m.apiRequests.Value("GET", "/api/blogs", "200"))
	assert.Equal(t, 1.0, m.apiRequests.Value("POST", "/api/blogs", "500"))
	assert.Equal(t, 1.0, m.apiErrors.Value())

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()
	assert.Contains(t, out, `bloglist_api_requests_total{method="GET",route="/api/blogs",status="200"} 2`)
	assert.Contains(t, out, `bloglist_api_request_duration_seconds_bucket{method="GET",route="/api/blogs",le="0.025"} 2`)
	assert.Contains(t, out, `bloglist_api_request_duration_seconds_bucket{method="POST",route="/api/blogs",le="+Inf"} 1`)
	assert.Contains(t, out, "# TYPE bloglist_api_inflight_requests gauge")
}

func TestMetricsDomainCounters(t *testing.T) {
	m := NewMetrics()
	m.IncBlogWrite("create")
	m.IncBlogWrite("delete")
	m.IncStatsCache(false)
	m.IncStatsCache(true)
	m.IncStatsCache(true)

	assert.Equal(t, 1.0, m.blogWrites.Value("create"))
	assert.Equal(t, 2.0, m.statsCache.Value("hit"))
	assert.Equal(t, 1.0, m.statsCache.Value("miss"))
}

func TestMetricsWriteHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	NewMetrics().WriteHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# HELP bloglist_blog_writes_total")

	rec = httptest.NewRecorder()
	var nilMetrics *Metrics
	nilMetrics.WriteHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLabelEscaping(t *testing.T) {
	assert.Equal(t, `{route="a\"b"}`, labelString([]string{"route"}, []string{`a"b`}))
	assert.Equal(t, `{le="1"}`, withLe("", "1"))
}

func TestParseHeaders(t *testing.T) {
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, ParseHeaders("a=1, b=2,broken,=x"))
	assert.Nil(t, ParseHeaders(""))
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 1.0, clampRatio(3))
	assert.Equal(t, 0.25, clampRatio(0.25))
}
