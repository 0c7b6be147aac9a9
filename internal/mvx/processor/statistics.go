package processor

import (
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"github.com/goodnatureofminers/mvx-txprocessor/pkg/safe"
)

// computeStatistics derives throughput and an ETA for the current cycle.
// Rates are reported as zero while no time has elapsed or no nonce has been processed.
func computeStatistics(cycleStart, now time.Time, nonceAtCycleStart, currentNonce, lastProcessedNonce uint64) model.TransactionStatistics {
	stats := model.TransactionStatistics{
		SecondsElapsed:  now.Sub(cycleStart).Seconds(),
		ProcessedNonces: safe.SubUint64(lastProcessedNonce, nonceAtCycleStart),
		NoncesLeft:      safe.SubUint64(currentNonce, lastProcessedNonce),
	}
	if stats.SecondsElapsed > 0 {
		stats.NoncesPerSecond = float64(stats.ProcessedNonces) / stats.SecondsElapsed
	}
	if stats.NoncesPerSecond > 0 {
		stats.SecondsLeft = float64(stats.NoncesLeft) / stats.NoncesPerSecond * statisticsSafetyMargin
	}
	return stats
}
