package sink

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"go.uber.org/zap"
)

// Store persists delivered transactions. Withheld transactions are only logged:
// they are stored once delivered.
type Store struct {
	writer TransactionWriter
	logger *zap.Logger
}

func NewStore(writer TransactionWriter, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{writer: writer, logger: logger.Named("store_sink")}
}

func (s *Store) OnTransactionsReceived(ctx context.Context, n model.Notification) error {
	if err := s.writer.InsertTransactions(ctx, n); err != nil {
		return fmt.Errorf("store transactions of shard %s nonce %d: %w", n.ShardID, n.Nonce, err)
	}
	return nil
}

func (s *Store) OnTransactionsPending(_ context.Context, n model.PendingNotification) error {
	s.logger.Debug("withholding transactions until cross-shard results arrive",
		zap.Stringer("shard", n.ShardID),
		zap.Uint64("nonce", n.Nonce),
		zap.Int("transactions", len(n.Transactions)),
	)
	return nil
}
