package processor

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/decoder"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/gateway"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
)

// processByHyperblock walks metachain hyperblocks. The watermark is kept under
// the metachain key and cross-shard results are not reconciled.
func (p *Processor) processByHyperblock(ctx context.Context) error {
	cycleStart := p.now()
	currentNonce, err := p.getCurrentNonce(ctx, model.Metachain)
	if err != nil {
		return err
	}

	var shardIDs []model.ShardID
	if p.options.NotifyEmptyBlocks {
		if shardIDs, err = p.getShardIDs(ctx); err != nil {
			return err
		}
	}

	var (
		startNonce  uint64
		startCaught bool
	)
	for {
		lastProcessed, proceed, err := p.watermarks.resolve(ctx, model.Metachain, currentNonce)
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}
		if !startCaught {
			startNonce, startCaught = lastProcessed, true
		}

		nonce := lastProcessed + 1
		block, err := p.getHyperblock(ctx, nonce)
		if err != nil {
			return err
		}
		if block == nil {
			return nil
		}

		for _, group := range groupByDestination(block.Transactions, shardIDs) {
			if len(group.transactions) == 0 && !p.options.NotifyEmptyBlocks {
				continue
			}
			err = p.notifyReceived(ctx, model.Notification{
				ShardID:      group.shardID,
				Nonce:        nonce,
				Round:        block.Round,
				Timestamp:    block.Timestamp,
				BlockHash:    block.Hash,
				Transactions: group.transactions,
				Statistics:   computeStatistics(cycleStart, p.now(), startNonce, currentNonce, lastProcessed),
			})
			if err != nil {
				return err
			}
		}

		p.logf(model.TopicDebug, "Setting last processed nonce to %d", nonce)
		if err := p.watermarks.commit(ctx, model.Metachain, nonce); err != nil {
			return err
		}
	}
}

type shardGroup struct {
	shardID      model.ShardID
	transactions []*model.ShardTransaction
}

// groupByDestination groups txs by destination shard in order of first
// appearance, then appends an empty group for every shard in allShards
// that received nothing.
func groupByDestination(txs []*model.ShardTransaction, allShards []model.ShardID) []shardGroup {
	index := make(map[model.ShardID]int)
	groups := make([]shardGroup, 0, len(allShards))
	for _, tx := range txs {
		i, ok := index[tx.DestinationShard]
		if !ok {
			i = len(groups)
			index[tx.DestinationShard] = i
			groups = append(groups, shardGroup{shardID: tx.DestinationShard})
		}
		groups[i].transactions = append(groups[i].transactions, tx)
	}
	for _, shardID := range allShards {
		if _, ok := index[shardID]; ok {
			continue
		}
		groups = append(groups, shardGroup{shardID: shardID, transactions: []*model.ShardTransaction{}})
	}
	return groups
}

func (p *Processor) getHyperblock(ctx context.Context, nonce uint64) (*model.Block, error) {
	raw, err := p.gateway.Get(ctx, gateway.HyperblockByNoncePath(nonce))
	if err != nil {
		return nil, fmt.Errorf("get hyperblock nonce %d: %w", nonce, err)
	}
	block, err := decoder.DecodeHyperblock(raw)
	if err != nil {
		return nil, fmt.Errorf("decode hyperblock nonce %d: %w", nonce, err)
	}
	if block == nil {
		p.logf(model.TopicDebug, "Hyperblock for nonce %d is not available", nonce)
	}
	return block, nil
}
