package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	LoaderBatchSize   *prometheus.HistogramVec
	EventsPublished   *prometheus.CounterVec
	EventsDropped     *prometheus.CounterVec
	ActiveSubscribers prometheus.Gauge
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pharmos_graphql_requests_total",
				Help: "Total number of GraphQL requests by operation and status",
			},
			[]string{"operation", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pharmos_graphql_request_duration_seconds",
				Help:    "GraphQL request duration in seconds by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		LoaderBatchSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pharmos_loader_batch_size",
				Help:    "Keys per flushed loader batch by loader name",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"loader"},
		),
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pharmos_events_published_total",
				Help: "Events published to the bus by topic",
			},
			[]string{"topic"},
		),
		EventsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pharmos_events_dropped_total",
				Help: "Events dropped for slow subscribers by topic",
			},
			[]string{"topic"},
		),
		ActiveSubscribers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pharmos_active_subscribers",
				Help: "Currently connected subscription clients",
			},
		),
	}
}

// RecordRequest records a GraphQL request metric.
func (m *Metrics) RecordRequest(operation, status string, duration float64) {
	m.RequestsTotal.WithLabelValues(operation, status).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(duration)
}

// ObserveBatch records the size of one flushed loader batch.
func (m *Metrics) ObserveBatch(loader string, size int) {
	m.LoaderBatchSize.WithLabelValues(loader).Observe(float64(size))
}
