package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TaskProcessed  *prometheus.CounterVec
	APIErrors      prometheus.Counter
	RequestSeconds *prometheus.HistogramVec
	ActiveWorkers  prometheus.Gauge

	RouteQueries *prometheus.CounterVec
	SolveSeconds prometheus.Histogram
	GraphNodes   prometheus.Gauge
	GraphEdges   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		TaskProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "courier_geocoding_tasks_processed_total",
			Help: "Total number of processed location geocoding tasks.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "courier_geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "courier_geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "courier_geocoding_active_workers",
			Help: "Current number of active workers processing geocoding tasks.",
		}),
		RouteQueries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "courier_route_queries_total",
			Help: "Total number of answered route queries by outcome.",
		}, []string{"status"}),
		SolveSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "courier_route_solve_duration_seconds",
			Help:    "Duration of a single shortest path search.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		GraphNodes: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "courier_graph_nodes",
			Help: "Number of locations in the most recently built graph.",
		}),
		GraphEdges: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "courier_graph_edges",
			Help: "Number of connections in the most recently built graph.",
		}),
	}
}
