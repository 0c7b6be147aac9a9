package processor

import "time"

const (
	networkResetNonceThreshold uint64 = 10_000

	crossShardTTL = 600 * time.Second

	snapshotWorkerCount = 8

	statisticsSafetyMargin = 1.1
)
