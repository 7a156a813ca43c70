package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Solve outcomes recorded by Metrics
const (
	outcomeSuccess = "success"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// Metrics holds the server's Prometheus collectors on a private registry
type Metrics struct {
	registry      *prometheus.Registry
	handler       http.Handler
	requests      *prometheus.CounterVec
	solves        *prometheus.CounterVec
	solveDuration prometheus.Histogram
	coverage      prometheus.Histogram
}

// NewMetrics registers the schedule and HTTP collectors
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_solves_total",
		Help: "Schedule generation attempts by outcome",
	}, []string{"outcome"})

	solveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_solve_duration_seconds",
		Help:    "Time spent generating a schedule, including store reads",
		Buckets: prometheus.DefBuckets,
	})

	coverage := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_coverage_percent",
		Help:    "Coverage of successfully generated schedules",
		Buckets: []float64{50, 75, 90, 95, 99, 100},
	})

	registry.MustRegister(requests, solves, solveDuration, coverage)

	return &Metrics{
		registry:      registry,
		handler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requests:      requests,
		solves:        solves,
		solveDuration: solveDuration,
		coverage:      coverage,
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

func (m *Metrics) observeRequest(method, route string, status int) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) observeSolve(outcome string, started time.Time, coveragePercent int) {
	m.solves.WithLabelValues(outcome).Inc()
	m.solveDuration.Observe(time.Since(started).Seconds())
	if outcome == outcomeSuccess {
		m.coverage.Observe(float64(coveragePercent))
	}
}
