package processor

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"github.com/goodnatureofminers/mvx-txprocessor/pkg/safe"
)

// watermarkTracker resolves where processing resumes for a shard and records progress.
type watermarkTracker struct {
	store         WatermarkStore
	maxLookBehind uint64
	metrics       Metrics
	messages      MessageLogger
}

// resolve returns the last processed nonce to continue from and whether the shard
// has anything left to process below currentNonce.
func (w *watermarkTracker) resolve(ctx context.Context, shardID model.ShardID, currentNonce uint64) (uint64, bool, error) {
	lastProcessed, err := w.lastProcessedOrInit(ctx, shardID, currentNonce)
	if err != nil {
		return 0, false, err
	}
	w.logf("shard %s current nonce %d last processed nonce %d", shardID, currentNonce, lastProcessed)

	if lastProcessed == currentNonce {
		w.logf("shard %s reached tip at nonce %d", shardID, currentNonce)
		return lastProcessed, false, nil
	}

	// devnet/testnet resets restart nonces near zero
	if lastProcessed > currentNonce && lastProcessed-currentNonce > networkResetNonceThreshold {
		w.logf("Detected network reset. Setting last processed nonce to %d for shard %s", currentNonce, shardID)
		lastProcessed = currentNonce
	}

	if lastProcessed > currentNonce {
		w.logf("last processed nonce %d is ahead of current nonce %d for shard %s", lastProcessed, currentNonce, shardID)
		return lastProcessed, false, nil
	}

	if w.maxLookBehind > 0 && currentNonce-lastProcessed > w.maxLookBehind {
		lastProcessed = currentNonce - w.maxLookBehind
	}

	return lastProcessed, true, nil
}

func (w *watermarkTracker) lastProcessedOrInit(ctx context.Context, shardID model.ShardID, currentNonce uint64) (uint64, error) {
	lastProcessed, ok, err := w.store.GetLastProcessedNonce(ctx, shardID, currentNonce)
	if err != nil {
		return 0, fmt.Errorf("get last processed nonce for shard %s: %w", shardID, err)
	}
	if ok {
		return lastProcessed, nil
	}

	lastProcessed = safe.SubUint64(currentNonce, 1)
	if err := w.commit(ctx, shardID, lastProcessed); err != nil {
		return 0, err
	}
	return lastProcessed, nil
}

// commit persists nonce as the shard's watermark.
func (w *watermarkTracker) commit(ctx context.Context, shardID model.ShardID, nonce uint64) error {
	if err := w.store.SetLastProcessedNonce(ctx, shardID, nonce); err != nil {
		return fmt.Errorf("set last processed nonce %d for shard %s: %w", nonce, shardID, err)
	}
	w.metrics.SetWatermark(shardID, nonce)
	return nil
}

func (w *watermarkTracker) logf(format string, args ...any) {
	w.messages.LogMessage(model.TopicDebug, fmt.Sprintf(format, args...))
}

// MemoryWatermarkStore keeps watermarks in process memory.
type MemoryWatermarkStore struct {
	mu     sync.RWMutex
	nonces map[model.ShardID]uint64
}

var _ WatermarkStore = (*MemoryWatermarkStore)(nil)

// NewMemoryWatermarkStore creates an empty MemoryWatermarkStore.
func NewMemoryWatermarkStore() *MemoryWatermarkStore {
	return &MemoryWatermarkStore{nonces: make(map[model.ShardID]uint64)}
}

// GetLastProcessedNonce returns the stored watermark for shardID, if any.
func (s *MemoryWatermarkStore) GetLastProcessedNonce(_ context.Context, shardID model.ShardID, _ uint64) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nonce, ok := s.nonces[shardID]
	return nonce, ok, nil
}

// SetLastProcessedNonce stores the watermark for shardID.
func (s *MemoryWatermarkStore) SetLastProcessedNonce(_ context.Context, shardID model.ShardID, nonce uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nonces[shardID] = nonce
	return nil
}
