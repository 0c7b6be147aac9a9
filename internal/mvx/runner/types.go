package runner

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Processor performs one catch-up run.
	Processor interface {
		Start(ctx context.Context) error
	}
	// Locker serializes runs across instances.
	Locker interface {
		TryLock(ctx context.Context) (bool, error)
		Unlock(ctx context.Context) error
	}
	Metrics interface {
		ObserveCycle(err error, started time.Time)
		ObserveLock(acquired bool, err error)
	}
)
