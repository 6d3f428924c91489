package observability

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Metrics holds the service's request and domain counters. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiErrors   *Counter
	blogWrites  *CounterVec
	statsCache  *CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("bloglist_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"bloglist_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("bloglist_api_inflight_requests", "In-flight API requests."),
		apiErrors:   NewCounter("bloglist_api_server_errors_total", "API responses with a 5xx status."),
		blogWrites:  NewCounterVec("bloglist_blog_writes_total", "Blog writes by operation.", []string{"op"}),
		statsCache:  NewCounterVec("bloglist_stats_cache_total", "Stats summary lookups by cache result.", []string{"result"}),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiErrors, m.blogWrites, m.statsCache,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, fmt.Sprint(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
	if status >= 500 {
		m.apiErrors.Inc()
	}
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// IncBlogWrite counts a create, update or delete.
func (m *Metrics) IncBlogWrite(op string) {
	if m == nil {
		return
	}
	m.blogWrites.Inc(op)
}

func (m *Metrics) IncStatsCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.statsCache.Inc("hit")
		return
	}
	m.statsCache.Inc("miss")
}

// CounterVec is a counter partitioned by label values.
type CounterVec struct {
	name   string
	help   string
	labels []string
	mu     sync.RWMutex
	series map[string]float64
}

func NewCounterVec(name, help string, labels []string) *CounterVec {
	return &CounterVec{name: name, help: help, labels: labels, series: map[string]float64{}}
}

func (c *CounterVec) Inc(values ...string) {
	key := labelString(c.labels, values)
	c.mu.Lock()
	c.series[key]++
	c.mu.Unlock()
}

func (c *CounterVec) Value(values ...string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.series[labelString(c.labels, values)]
}

func (c *CounterVec) WritePrometheus(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if err := writeHeader(w, c.name, c.help, "counter"); err != nil {
		return err
	}
	keys := make([]string, 0, len(c.series))
	for k := range c.series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s%s %g\n", c.name, k, c.series[k]); err != nil {
			return err
		}
	}
	return nil
}

// scalar backs both Counter and Gauge; only the exposition type differs.
type scalar struct {
	name string
	help string
	kind string
	mu   sync.RWMutex
	val  float64
}

func (s *scalar) add(v float64) {
	s.mu.Lock()
	s.val += v
	s.mu.Unlock()
}

func (s *scalar) Value() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.val
}

func (s *scalar) WritePrometheus(w io.Writer) error {
	if err := writeHeader(w, s.name, s.help, s.kind); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %g\n", s.name, s.Value())
	return err
}

type Counter struct{ scalar }

func NewCounter(name, help string) *Counter {
	return &Counter{scalar{name: name, help: help, kind: "counter"}}
}

func (c *Counter) Inc() { c.add(1) }

type Gauge struct{ scalar }

func NewGauge(name, help string) *Gauge {
	return &Gauge{scalar{name: name, help: help, kind: "gauge"}}
}

func (g *Gauge) Inc() { g.add(1) }
func (g *Gauge) Dec() { g.add(-1) }

// HistogramVec keeps cumulative bucket counts per label set.
type HistogramVec struct {
	name    string
	help    string
	labels  []string
	bounds  []float64
	mu      sync.RWMutex
	series  map[string]*histogram
	ordered []string
}

type histogram struct {
	cumulative []uint64 // one per bound, then +Inf
	sum        float64
}

func NewHistogramVec(name, help string, labels []string, bounds []float64) *HistogramVec {
	return &HistogramVec{name: name, help: help, labels: labels, bounds: bounds, series: map[string]*histogram{}}
}

func (h *HistogramVec) Observe(v float64, values ...string) {
	key := labelString(h.labels, values)
	h.mu.Lock()
	defer h.mu.Unlock()
	hist := h.series[key]
	if hist == nil {
		hist = &histogram{cumulative: make([]uint64, len(h.bounds)+1)}
		h.series[key] = hist
		h.ordered = append(h.ordered, key)
		sort.Strings(h.ordered)
	}
	hist.sum += v
	for i := range hist.cumulative {
		if i == len(h.bounds) || v <= h.bounds[i] {
			hist.cumulative[i]++
		}
	}
}

func (h *HistogramVec) WritePrometheus(w io.Writer) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if err := writeHeader(w, h.name, h.help, "histogram"); err != nil {
		return err
	}
	for _, key := range h.ordered {
		hist := h.series[key]
		for i, n := range hist.cumulative {
			le := "+Inf"
			if i < len(h.bounds) {
				le = fmt.Sprintf("%g", h.bounds[i])
			}
			if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLe(key, le), n); err != nil {
				return err
			}
		}
		total := hist.cumulative[len(h.bounds)]
		if _, err := fmt.Fprintf(w, "%s_sum%s %g\n%s_count%s %d\n", h.name, key, hist.sum, h.name, key, total); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(w io.Writer, name, help, kind string) error {
	_, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
	return err
}

// labelString renders label pairs in Prometheus text form. Missing values
// are filled with "unknown".
func labelString(names []string, values []string) string {
	if len(names) == 0 {
		return ""
	}
	pairs := make([]string, len(names))
	for i, name := range names {
		val := "unknown"
		if i < len(values) {
			val = values[i]
		}
		pairs[i] = name + "=" + strconv.Quote(val)
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

func withLe(labels string, le string) string {
	if labels == "" {
		return `{le="` + le + `"}`
	}
	return strings.TrimSuffix(labels, "}") + `,le="` + le + `"}`
}
