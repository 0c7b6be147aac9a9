package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runnerCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "runner",
		Name:      "cycles_total",
		Help:      "Count of scheduled cycles.",
	}, []string{"network", "status"})

	runnerCycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "runner",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of a scheduled cycle including lock handling.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	runnerLockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "runner",
		Name:      "lock_attempts_total",
		Help:      "Count of distributed lock attempts.",
	}, []string{"network", "result"})
)

// Runner tracks metrics for the scheduling loop.
type Runner struct {
	network string
}

// NewRunner constructs a Runner with defaults.
func NewRunner(network string) *Runner {
	if network == "" {
		network = "unknown"
	}
	return &Runner{network: network}
}

// ObserveCycle records a cycle outcome and duration.
func (m Runner) ObserveCycle(err error, started time.Time) {
	status := statusOf(err)
	runnerCyclesTotal.WithLabelValues(m.network, status).Inc()
	runnerCycleDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
}

// ObserveLock records whether the distributed lock was acquired.
func (m Runner) ObserveLock(acquired bool, err error) {
	result := "acquired"
	switch {
	case err != nil:
		result = "error"
	case !acquired:
		result = "busy"
	}
	runnerLockTotal.WithLabelValues(m.network, result).Inc()
}
