package metrics

import (
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	processorRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "processor",
		Name:      "runs_total",
		Help:      "Count of catch-up cycles.",
	}, []string{"network", "mode", "status"})

	processorRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "processor",
		Name:      "run_duration_seconds",
		Help:      "Duration of a catch-up cycle.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"network", "mode", "status"})

	processorNotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "processor",
		Name:      "notifications_total",
		Help:      "Count of received-transaction notifications per shard.",
	}, []string{"network", "shard"})

	processorTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "processor",
		Name:      "transactions_total",
		Help:      "Count of transactions delivered per shard.",
	}, []string{"network", "shard"})

	processorWatermark = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "processor",
		Name:      "last_processed_nonce",
		Help:      "Last processed nonce per shard.",
	}, []string{"network", "shard"})

	processorPendingCrossShard = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "processor",
		Name:      "pending_cross_shard_transactions",
		Help:      "Transactions awaiting cross-shard smart contract results.",
	}, []string{"network"})

	processorPrunedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "processor",
		Name:      "pruned_cross_shard_total",
		Help:      "Count of pending cross-shard transactions dropped by age.",
	}, []string{"network"})
)

// Processor tracks metrics for the transaction processor.
type Processor struct {
	network string
}

// NewProcessor constructs a Processor with defaults.
func NewProcessor(network string) *Processor {
	if network == "" {
		network = "unknown"
	}
	return &Processor{network: network}
}

// ObserveRun records a catch-up cycle outcome and duration.
func (m Processor) ObserveRun(mode model.Mode, err error, started time.Time) {
	status := statusOf(err)
	processorRunsTotal.WithLabelValues(m.network, string(mode), status).Inc()
	processorRunDuration.WithLabelValues(m.network, string(mode), status).Observe(time.Since(started).Seconds())
}

// ObserveNotification records one delivered notification.
func (m Processor) ObserveNotification(shardID model.ShardID, transactions int) {
	processorNotificationsTotal.WithLabelValues(m.network, shardID.String()).Inc()
	processorTransactionsTotal.WithLabelValues(m.network, shardID.String()).Add(float64(transactions))
}

// SetWatermark exposes the last processed nonce of a shard.
func (m Processor) SetWatermark(shardID model.ShardID, nonce uint64) {
	processorWatermark.WithLabelValues(m.network, shardID.String()).Set(float64(nonce))
}

// SetPendingCrossShard exposes the size of the pending cross-shard map.
func (m Processor) SetPendingCrossShard(count int) {
	processorPendingCrossShard.WithLabelValues(m.network).Set(float64(count))
}

// ObservePruned records pending entries dropped by age.
func (m Processor) ObservePruned(count int) {
	processorPrunedTotal.WithLabelValues(m.network).Add(float64(count))
}
