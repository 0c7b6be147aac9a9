package clock

import "time"

// Backoff doubles the delay after every consecutive failure, starting at Initial and capped at Max.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
}

// Delay returns the wait before retrying after failures consecutive failures (1-based).
func (b Backoff) Delay(failures int) time.Duration {
	if failures < 1 || b.Initial <= 0 {
		return b.Initial
	}

	d := b.Initial
	for i := 1; i < failures; i++ {
		if b.Max > 0 && d >= b.Max/2 {
			return b.Max
		}
		d *= 2
	}
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}
