package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/decoder"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/gateway"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
)

func (p *Processor) processByShardblock(ctx context.Context) error {
	if pruned := p.reconciler.prune(); pruned > 0 {
		p.metrics.ObservePruned(pruned)
	}
	p.metrics.SetPendingCrossShard(p.reconciler.len())

	cycleStart := p.now()
	shardIDs, err := p.getShardIDs(ctx)
	if err != nil {
		return err
	}
	p.logf(model.TopicDebug, "shardIds: %v", shardIDs)

	currentNonces, err := p.getCurrentNonces(ctx, shardIDs)
	if err != nil {
		return err
	}

	startNonces := make(map[model.ShardID]uint64, len(shardIDs))
	for {
		reachedTip := true
		for _, shardID := range shardIDs {
			progressed, err := p.processShardStep(ctx, shardID, cycleStart, currentNonces[shardID], startNonces)
			if err != nil {
				return err
			}
			if progressed {
				reachedTip = false
			}
		}
		if reachedTip {
			return nil
		}
	}
}

// processShardStep handles the nonce right after the shard's watermark and
// reports whether a block was found for it.
func (p *Processor) processShardStep(
	ctx context.Context,
	shardID model.ShardID,
	cycleStart time.Time,
	currentNonce uint64,
	startNonces map[model.ShardID]uint64,
) (progressed bool, err error) {
	lastProcessed, proceed, err := p.watermarks.resolve(ctx, shardID, currentNonce)
	if err != nil || !proceed {
		return false, err
	}
	if _, ok := startNonces[shardID]; !ok {
		startNonces[shardID] = lastProcessed
	}

	nonce := lastProcessed + 1
	block, err := p.getShardBlock(ctx, shardID, nonce)
	if err != nil {
		return false, err
	}
	if block == nil {
		return false, nil
	}

	// cross-shard changes are kept only once the nonce is committed
	p.reconciler.begin()
	defer func() {
		if err != nil {
			p.reconciler.rollback()
			p.metrics.SetPendingCrossShard(p.reconciler.len())
			return
		}
		p.reconciler.commit()
	}()

	deliverable, withheld := p.splitTransactions(shardID, block.Transactions)

	if len(deliverable) > 0 || p.options.NotifyEmptyBlocks {
		p.logf(model.TopicCrossShardSmartContractResult, "pending cross-shard transactions: %d", p.reconciler.len())
		err = p.notifyReceived(ctx, model.Notification{
			ShardID:      shardID,
			Nonce:        nonce,
			Round:        block.Round,
			Timestamp:    block.Timestamp,
			BlockHash:    block.Hash,
			Transactions: deliverable,
			Statistics:   computeStatistics(cycleStart, p.now(), startNonces[shardID], currentNonce, lastProcessed),
		})
		if err != nil {
			return false, err
		}
	}

	if len(withheld) > 0 {
		err = p.consumer.OnTransactionsPending(ctx, model.PendingNotification{
			ShardID:      shardID,
			Nonce:        nonce,
			Round:        block.Round,
			Timestamp:    block.Timestamp,
			Transactions: withheld,
		})
		if err != nil {
			return false, fmt.Errorf("notify pending transactions for shard %s nonce %d: %w", shardID, nonce, err)
		}
	}
	p.metrics.SetPendingCrossShard(p.reconciler.len())

	p.logf(model.TopicDebug, "Setting last processed nonce for shardId %s to %d", shardID, nonce)
	if err := p.watermarks.commit(ctx, shardID, nonce); err != nil {
		return false, err
	}
	return true, nil
}

// splitTransactions applies the destination filter and, in wait mode, the
// cross-shard reconciliation to one block's transactions.
func (p *Processor) splitTransactions(shardID model.ShardID, txs []*model.ShardTransaction) (deliverable, withheld []*model.ShardTransaction) {
	deliverable = make([]*model.ShardTransaction, 0, len(txs))
	if p.options.WaitForFinalizedCrossShardSmartContractResults {
		deliverable = append(deliverable, p.reconciler.reconcile(shardID, txs)...)
	}

	for _, tx := range txs {
		if tx.DestinationShard != shardID && !p.options.IncludeCrossShardStartedTransactions {
			p.logf(model.TopicDebug, "transaction with hash '%s' not on destination shard. Skipping", tx.Hash)
			continue
		}
		if p.reconciler.isPending(tx.Hash) {
			p.logf(model.TopicDebug, "transaction with hash '%s' is still awaiting cross shard SCRs. Skipping", tx.Hash)
			withheld = append(withheld, tx)
			continue
		}
		deliverable = append(deliverable, tx)
	}
	return deliverable, withheld
}

func (p *Processor) getShardBlock(ctx context.Context, shardID model.ShardID, nonce uint64) (*model.Block, error) {
	raw, err := p.gateway.Get(ctx, gateway.BlockByNoncePath(shardID, nonce))
	if err != nil {
		return nil, fmt.Errorf("get block for shard %s nonce %d: %w", shardID, nonce, err)
	}
	block, err := decoder.DecodeShardBlock(raw)
	if err != nil {
		return nil, fmt.Errorf("decode block for shard %s nonce %d: %w", shardID, nonce, err)
	}
	if block == nil {
		p.logf(model.TopicDebug, "Block for shardId %s and nonce %d is undefined or block not available", shardID, nonce)
		return nil, nil
	}
	if block.MiniBlockCount == 0 {
		p.logf(model.TopicDebug, "Block for shardId %s and nonce %d does not contain any miniBlocks", shardID, nonce)
	}
	return block, nil
}
