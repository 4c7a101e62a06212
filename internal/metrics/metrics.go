package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lunartide"

// Metrics owns a registry so each server instance exports its own series
type Metrics struct {
	registry       *prometheus.Registry
	requestLatency *prometheus.HistogramVec
	responseCache  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_latency_seconds",
				Help:      "HTTP request latencies in seconds.",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0},
			},
			[]string{"verb", "path", "code"},
		),
		responseCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "response_cache_total",
				Help:      "Response cache lookups by result.",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		m.requestLatency,
		m.responseCache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RegisterCacheStats exports a stats snapshot function as gauges named
// <subsystem>_cache_<key>, read on every scrape
func (m *Metrics) RegisterCacheStats(subsystem string, stats func() map[string]uint64, keys ...string) {
	for _, key := range keys {
		key := key
		m.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_" + key,
				Help:      "Almanac cache statistic " + key + ".",
			},
			func() float64 { return float64(stats()[key]) },
		))
	}
}

func (m *Metrics) ObserveRequestLatency(verb, path, code string, latency float64) {
	m.requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

func (m *Metrics) ObserveCacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.responseCache.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// LatencyHandler records request latency labelled by route template
func (m *Metrics) LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := routePath(r)
		rec := &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}

		// Any panics in next are reported as 500 errors and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				m.ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			m.ObserveRequestLatency(verb, path, strconv.Itoa(rec.Status), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

// routePath prefers the matched mux template so path labels stay bounded
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	if r.URL != nil {
		return r.URL.Path
	}
	return ""
}

// StatusRecorder captures the status code written by a handler
type StatusRecorder struct {
	http.ResponseWriter
	Status      int
	wroteHeader bool
}

func (s *StatusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.Status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *StatusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}
