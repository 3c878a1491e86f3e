package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlayerOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_player_operations_total",
		Help: "The total number of catalog operations by outcome",
	}, []string{"operation", "outcome"})

	PlayerOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roster_player_operation_duration_seconds",
		Help:    "Latency of catalog operations, storage included",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)
