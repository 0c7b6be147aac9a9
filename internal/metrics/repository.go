package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"operation", "backend", "network", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"operation", "backend", "network", "status"})
)

// Repository tracks metrics for watermark and transaction storage operations.
type Repository struct {
	network string
}

// NewRepository creates a Repository metrics collector.
func NewRepository(network string) *Repository {
	if network == "" {
		network = "unknown"
	}
	return &Repository{network: network}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation, backend string, err error, started time.Time) {
	if backend == "" {
		backend = "unknown"
	}
	status := statusOf(err)
	repositoryRequestsTotal.WithLabelValues(operation, backend, m.network, status).Inc()
	repositoryRequestDuration.WithLabelValues(operation, backend, m.network, status).Observe(time.Since(started).Seconds())
}
