package sink

import (
	"context"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// TransactionWriter persists delivered transactions.
	TransactionWriter interface {
		InsertTransactions(ctx context.Context, n model.Notification) error
	}
	// Consumer mirrors the processor's consumer contract.
	Consumer interface {
		OnTransactionsReceived(ctx context.Context, n model.Notification) error
		OnTransactionsPending(ctx context.Context, n model.PendingNotification) error
	}
)
