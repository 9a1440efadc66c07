package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_client_requests_total",
			Help: "Total requests issued to the shopping backend.",
		},
		[]string{"endpoint", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_client_request_duration_seconds",
			Help:    "Latency of shopping backend requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)
