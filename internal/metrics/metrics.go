// Package metrics exposes Prometheus metrics for the builder service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the collection of Prometheus metrics for the builder service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CompilesTotal   *prometheus.CounterVec
	CompileDuration prometheus.Histogram
	GraphNodes      prometheus.Gauge
	ValidationFails prometheus.Counter

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.CompilesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solgraph_compiles_total",
			Help: "Total number of contract generation requests by outcome",
		},
		[]string{"status"},
	)

	m.CompileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "solgraph_compile_duration_seconds",
			Help:    "End-to-end duration of one generation cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.GraphNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solgraph_graph_nodes",
			Help: "Node count of the most recently processed graph",
		},
	)

	m.ValidationFails = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "solgraph_validation_failures_total",
			Help: "Total number of graph validations that reported errors",
		},
	)

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CompilesTotal,
		m.CompileDuration,
		m.GraphNodes,
		m.ValidationFails,
	)

	return m
}

// statusRecorder captures the status code a handler writes so the middleware
// can label the request counter with it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware wraps a handler with request counting and latency observation.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordCompile records the outcome of one generation cycle.
func (m *Metrics) RecordCompile(status string, seconds float64) {
	m.CompilesTotal.WithLabelValues(status).Inc()
	m.CompileDuration.Observe(seconds)
}
