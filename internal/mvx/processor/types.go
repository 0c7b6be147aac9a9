package processor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Gateway fetches a gateway path and returns the unwrapped JSON payload.
	Gateway interface {
		Get(ctx context.Context, path string) (json.RawMessage, error)
	}
	// WatermarkStore persists the last processed nonce per shard.
	WatermarkStore interface {
		GetLastProcessedNonce(ctx context.Context, shardID model.ShardID, currentNonce uint64) (uint64, bool, error)
		SetLastProcessedNonce(ctx context.Context, shardID model.ShardID, nonce uint64) error
	}
	// Consumer receives delivered and withheld transactions.
	Consumer interface {
		OnTransactionsReceived(ctx context.Context, n model.Notification) error
		OnTransactionsPending(ctx context.Context, n model.PendingNotification) error
	}
	// MessageLogger receives diagnostic messages. Calls must not block.
	MessageLogger interface {
		LogMessage(topic model.LogTopic, message string)
	}
	// Metrics records processor progress.
	Metrics interface {
		ObserveRun(mode model.Mode, err error, started time.Time)
		ObserveNotification(shardID model.ShardID, transactions int)
		SetWatermark(shardID model.ShardID, nonce uint64)
		SetPendingCrossShard(count int)
		ObservePruned(count int)
	}
)
