package sink

import (
	"context"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
)

// Multi forwards notifications to every consumer in order and stops at the first error.
type Multi []Consumer

func (m Multi) OnTransactionsReceived(ctx context.Context, n model.Notification) error {
	for _, c := range m {
		if err := c.OnTransactionsReceived(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) OnTransactionsPending(ctx context.Context, n model.PendingNotification) error {
	for _, c := range m {
		if err := c.OnTransactionsPending(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
