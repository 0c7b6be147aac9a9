// Package pebble keeps processor watermarks in an embedded Pebble database.
package pebble

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
)

const backend = "pebble"

var (
	// ErrEmptyPath is returned when no database directory is configured.
	ErrEmptyPath = errors.New("pebble path is required")
	// ErrClosed is returned by operations on a closed repository.
	ErrClosed = errors.New("pebble repository is closed")
)

type Repository struct {
	db      *pebble.DB
	metrics Metrics
	network string
	closed  atomic.Bool
}

// NewRepository opens (or creates) the database at path.
func NewRepository(path, network string, metrics Metrics) (*Repository, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble database: %w", err)
	}

	return &Repository{db: db, metrics: metrics, network: network}, nil
}

// GetLastProcessedNonce returns the stored watermark of a shard; ok is false when none was stored yet.
func (r *Repository) GetLastProcessedNonce(_ context.Context, shardID model.ShardID, _ uint64) (nonce uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_last_processed_nonce", backend, err, start)
	}()

	if r.closed.Load() {
		err = ErrClosed
		return 0, false, err
	}

	value, closer, err := r.db.Get(r.watermarkKey(shardID))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			err = nil
			return 0, false, nil
		}
		err = fmt.Errorf("get watermark for shard %s: %w", shardID, err)
		return 0, false, err
	}
	defer func() {
		_ = closer.Close()
	}()

	if len(value) != 8 {
		err = fmt.Errorf("decode watermark for shard %s: unexpected length %d", shardID, len(value))
		return 0, false, err
	}
	return binary.BigEndian.Uint64(value), true, nil
}

// SetLastProcessedNonce durably stores the watermark of a shard.
func (r *Repository) SetLastProcessedNonce(_ context.Context, shardID model.ShardID, nonce uint64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("set_last_processed_nonce", backend, err, start)
	}()

	if r.closed.Load() {
		err = ErrClosed
		return err
	}

	value := binary.BigEndian.AppendUint64(nil, nonce)
	if err = r.db.Set(r.watermarkKey(shardID), value, pebble.Sync); err != nil {
		err = fmt.Errorf("set watermark for shard %s: %w", shardID, err)
		return err
	}
	return nil
}

// Close flushes and closes the database. Closing twice is a no-op.
func (r *Repository) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) watermarkKey(shardID model.ShardID) []byte {
	return []byte("mvx/watermark/" + r.network + "/" + shardID.String())
}
