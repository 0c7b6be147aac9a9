// Package sink contains the consumers that receive processed transactions.
package sink

import (
	"context"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"go.uber.org/zap"
)

// Log writes every notification to a zap logger.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger.Named("sink")}
}

func (l *Log) OnTransactionsReceived(_ context.Context, n model.Notification) error {
	l.logger.Info("transactions received",
		zap.Stringer("shard", n.ShardID),
		zap.Uint64("nonce", n.Nonce),
		zap.Uint64("round", n.Round),
		zap.String("block_hash", n.BlockHash),
		zap.Int("transactions", len(n.Transactions)),
		zap.Float64("nonces_per_second", n.Statistics.NoncesPerSecond),
		zap.Uint64("nonces_left", n.Statistics.NoncesLeft),
		zap.Float64("seconds_left", n.Statistics.SecondsLeft),
	)
	for _, tx := range n.Transactions {
		l.logger.Debug("transaction",
			zap.String("hash", tx.Hash),
			zap.String("sender", tx.Sender),
			zap.String("receiver", tx.Receiver),
			zap.String("value", tx.Value),
			zap.String("function", tx.FunctionName()),
			zap.String("status", tx.Status),
		)
	}
	return nil
}

func (l *Log) OnTransactionsPending(_ context.Context, n model.PendingNotification) error {
	l.logger.Info("transactions pending",
		zap.Stringer("shard", n.ShardID),
		zap.Uint64("nonce", n.Nonce),
		zap.Int("transactions", len(n.Transactions)),
	)
	return nil
}
