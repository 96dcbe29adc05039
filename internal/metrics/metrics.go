package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SnapshotRequestsTotal   prometheus.Counter
	HistoryRequestsTotal    prometheus.Counter
	ConversionRequestsTotal prometheus.Counter
	ExportRequestsTotal     prometheus.Counter

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	UpstreamRequestsTotal *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		SnapshotRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "snapshot_requests_total",
				Help: "Total number of daily snapshot requests",
			},
		),

		HistoryRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "history_requests_total",
				Help: "Total number of rate history requests",
			},
		),

		ConversionRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "conversion_requests_total",
				Help: "Total number of currency conversion requests",
			},
		),

		ExportRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "export_requests_total",
				Help: "Total number of CSV export requests",
			},
		),

		CacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of snapshot cache hits",
			},
		),

		CacheMissesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of snapshot cache misses",
			},
		),

		UpstreamRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_requests_total",
				Help: "Total number of CBR feed requests",
			},
			[]string{"endpoint", "outcome"},
		),
	}
}
