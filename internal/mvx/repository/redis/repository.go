// Package redis shares processor watermarks and the run lock between instances through Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"github.com/redis/go-redis/v9"
)

const backend = "redis"

// ErrEmptyAddr is returned when no Redis address is configured.
var ErrEmptyAddr = errors.New("redis address is required")

// Options configures the Redis connection.
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type Repository struct {
	client  redis.UniversalClient
	metrics Metrics
	prefix  string
	network string
}

// NewClient connects to Redis and checks the connection.
func NewClient(ctx context.Context, opts Options) (redis.UniversalClient, error) {
	if opts.Addr == "" {
		return nil, ErrEmptyAddr
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRepository stores watermarks under "<prefix>watermark:<network>:<shard>".
func NewRepository(client redis.UniversalClient, prefix, network string, metrics Metrics) *Repository {
	return &Repository{client: client, metrics: metrics, prefix: prefix, network: network}
}

// GetLastProcessedNonce returns the stored watermark of a shard; ok is false when none was stored yet.
func (r *Repository) GetLastProcessedNonce(ctx context.Context, shardID model.ShardID, _ uint64) (nonce uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_last_processed_nonce", backend, err, start)
	}()

	value, err := r.client.Get(ctx, r.watermarkKey(shardID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = nil
			return 0, false, nil
		}
		err = fmt.Errorf("get watermark for shard %s: %w", shardID, err)
		return 0, false, err
	}

	nonce, err = strconv.ParseUint(value, 10, 64)
	if err != nil {
		err = fmt.Errorf("parse watermark for shard %s: %w", shardID, err)
		return 0, false, err
	}
	return nonce, true, nil
}

// SetLastProcessedNonce stores the watermark of a shard without expiry.
func (r *Repository) SetLastProcessedNonce(ctx context.Context, shardID model.ShardID, nonce uint64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("set_last_processed_nonce", backend, err, start)
	}()

	if err = r.client.Set(ctx, r.watermarkKey(shardID), strconv.FormatUint(nonce, 10), 0).Err(); err != nil {
		err = fmt.Errorf("set watermark for shard %s: %w", shardID, err)
		return err
	}
	return nil
}

func (r *Repository) watermarkKey(shardID model.ShardID) string {
	return r.prefix + "watermark:" + r.network + ":" + shardID.String()
}
