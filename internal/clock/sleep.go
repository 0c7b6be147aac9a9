// Package clock provides waiting helpers for polling loops.
package clock

import (
	"context"
	"time"
)

// SleepWithContext blocks for d or until ctx is done. A non-positive d only reports the context state.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
