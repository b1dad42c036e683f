package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the server exports. Each instance owns its
// registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
	SeededDocuments     *prometheus.CounterVec
	SeedFailures        *prometheus.CounterVec
	ReviewsInserted     prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HttpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HttpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SeededDocuments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seeded_documents_total",
				Help: "Fixture documents written to a collection at startup",
			},
			[]string{"collection"},
		),
		SeedFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seed_failures_total",
				Help: "Collections whose startup seeding failed",
			},
			[]string{"collection"},
		),
		ReviewsInserted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "reviews_inserted_total",
				Help: "Reviews created through the insert endpoint",
			},
		),
	}

	m.registry.MustRegister(
		m.HttpRequestsTotal,
		m.HttpRequestDuration,
		m.SeededDocuments,
		m.SeedFailures,
		m.ReviewsInserted,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordSeed(collection string, documents int64) {
	if m == nil {
		return
	}
	m.SeededDocuments.WithLabelValues(collection).Add(float64(documents))
}

func (m *Metrics) RecordSeedFailure(collection string) {
	if m == nil {
		return
	}
	m.SeedFailures.WithLabelValues(collection).Inc()
}

func (m *Metrics) RecordReviewInserted() {
	if m == nil {
		return
	}
	m.ReviewsInserted.Inc()
}
