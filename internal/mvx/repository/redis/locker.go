package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotHeld is returned by Unlock when the lock expired or belongs to another holder.
var ErrLockNotHeld = errors.New("redis lock is not held")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Locker is a single-holder lock keyed per network. Every Locker carries its own token,
// so only the instance that acquired the lock can release it.
type Locker struct {
	client  redis.UniversalClient
	metrics Metrics
	key     string
	token   string
	ttl     time.Duration
}

func NewLocker(client redis.UniversalClient, prefix, network string, ttl time.Duration, metrics Metrics) *Locker {
	return &Locker{
		client:  client,
		metrics: metrics,
		key:     prefix + "lock:" + network,
		token:   uuid.NewString(),
		ttl:     ttl,
	}
}

// TryLock acquires the lock if it is free. The lock expires after the configured ttl.
func (l *Locker) TryLock(ctx context.Context) (acquired bool, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("try_lock", backend, err, start)
	}()

	acquired, err = l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		err = fmt.Errorf("acquire lock %s: %w", l.key, err)
		return false, err
	}
	return acquired, nil
}

// Unlock releases the lock if this Locker still holds it.
func (l *Locker) Unlock(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("unlock", backend, err, start)
	}()

	released, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int64()
	if err != nil {
		err = fmt.Errorf("release lock %s: %w", l.key, err)
		return err
	}
	if released == 0 {
		err = ErrLockNotHeld
		return err
	}
	return nil
}
