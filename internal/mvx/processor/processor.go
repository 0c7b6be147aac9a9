// Package processor walks MultiversX shard blocks or hyperblocks from a
// per-shard watermark up to the chain tip and hands finalized transactions
// to a Consumer.
package processor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/decoder"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/gateway"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"github.com/goodnatureofminers/mvx-txprocessor/pkg/workerpool"
)

var (
	// ErrNilGateway is returned by New when no gateway is supplied.
	ErrNilGateway = errors.New("processor gateway is required")
	// ErrInvalidMode is returned when Options.Mode is not a known mode.
	ErrInvalidMode = errors.New("invalid processor mode")
)

// Processor runs catch-up cycles. A Processor owns its pending cross-shard
// state, so separate instances never share progress in memory.
type Processor struct {
	gateway    Gateway
	consumer   Consumer
	messages   MessageLogger
	metrics    Metrics
	options    Options
	watermarks *watermarkTracker
	reconciler *reconciler
	now        func() time.Time
	running    atomic.Bool
}

// New builds a Processor. A nil store falls back to memory, a nil consumer
// discards notifications and a nil logger or metrics disables them.
func New(
	gw Gateway,
	consumer Consumer,
	store WatermarkStore,
	messages MessageLogger,
	metrics Metrics,
	options Options,
) (*Processor, error) {
	if gw == nil {
		return nil, ErrNilGateway
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if consumer == nil {
		consumer = nopConsumer{}
	}
	if store == nil {
		store = NewMemoryWatermarkStore()
	}
	if messages == nil {
		messages = nopMessageLogger{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &Processor{
		gateway:  gw,
		consumer: consumer,
		messages: messages,
		metrics:  metrics,
		options:  options,
		watermarks: &watermarkTracker{
			store:         store,
			maxLookBehind: options.MaxLookBehind,
			metrics:       metrics,
			messages:      messages,
		},
		reconciler: newReconciler(messages, time.Now),
		now:        time.Now,
	}, nil
}

// Start runs one catch-up cycle and returns once every shard reached its tip.
// A call made while another cycle is in flight returns nil without doing anything.
func (p *Processor) Start(ctx context.Context) (err error) {
	if !p.running.CompareAndSwap(false, true) {
		p.logf(model.TopicDebug, "Transaction processor is already running")
		return nil
	}
	defer p.running.Store(false)

	mode := p.options.mode()
	started := p.now()
	defer func() {
		p.metrics.ObserveRun(mode, err, started)
		if err != nil {
			p.logf(model.TopicError, "transaction processor run failed: %v", err)
		}
	}()

	switch mode {
	case model.ModeHyperblock:
		return p.processByHyperblock(ctx)
	default:
		return p.processByShardblock(ctx)
	}
}

// Running reports whether a cycle is in flight.
func (p *Processor) Running() bool {
	return p.running.Load()
}

func (p *Processor) getShardIDs(ctx context.Context) ([]model.ShardID, error) {
	raw, err := p.gateway.Get(ctx, gateway.NetworkConfigPath())
	if err != nil {
		return nil, fmt.Errorf("get network config: %w", err)
	}
	count, err := decoder.DecodeShardCount(raw)
	if err != nil {
		return nil, fmt.Errorf("decode network config: %w", err)
	}
	return model.ShardIDs(count), nil
}

func (p *Processor) getCurrentNonce(ctx context.Context, shardID model.ShardID) (uint64, error) {
	raw, err := p.gateway.Get(ctx, gateway.NetworkStatusPath(shardID))
	if err != nil {
		return 0, fmt.Errorf("get network status for shard %s: %w", shardID, err)
	}
	nonce, err := decoder.DecodeCurrentNonce(raw)
	if err != nil {
		return 0, fmt.Errorf("decode network status for shard %s: %w", shardID, err)
	}
	return nonce, nil
}

// getCurrentNonces snapshots every shard's tip concurrently.
func (p *Processor) getCurrentNonces(ctx context.Context, shardIDs []model.ShardID) (map[model.ShardID]uint64, error) {
	nonces, err := workerpool.Map(ctx, snapshotWorkerCount, shardIDs, p.getCurrentNonce)
	if err != nil {
		return nil, err
	}

	out := make(map[model.ShardID]uint64, len(shardIDs))
	for i, shardID := range shardIDs {
		out[shardID] = nonces[i]
	}
	return out, nil
}

func (p *Processor) notifyReceived(ctx context.Context, n model.Notification) error {
	p.logf(model.TopicDebug, "For shardId %s and nonce %d, notifying transactions with hashes %v",
		n.ShardID, n.Nonce, transactionHashes(n.Transactions))
	if err := p.consumer.OnTransactionsReceived(ctx, n); err != nil {
		return fmt.Errorf("notify received transactions for shard %s nonce %d: %w", n.ShardID, n.Nonce, err)
	}
	p.metrics.ObserveNotification(n.ShardID, len(n.Transactions))
	return nil
}

func transactionHashes(txs []*model.ShardTransaction) []string {
	hashes := make([]string, 0, len(txs))
	for _, tx := range txs {
		hashes = append(hashes, tx.Hash)
	}
	return hashes
}

type nopConsumer struct{}

func (nopConsumer) OnTransactionsReceived(context.Context, model.Notification) error {
	return nil
}

func (nopConsumer) OnTransactionsPending(context.Context, model.PendingNotification) error {
	return nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveRun(model.Mode, error, time.Time) {}
func (nopMetrics) ObserveNotification(model.ShardID, int)  {}
func (nopMetrics) SetWatermark(model.ShardID, uint64)      {}
func (nopMetrics) SetPendingCrossShard(int)                {}
func (nopMetrics) ObservePruned(int)                       {}
