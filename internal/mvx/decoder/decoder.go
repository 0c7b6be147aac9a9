// Package decoder maps raw gateway payloads into domain models.
package decoder

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"github.com/goodnatureofminers/mvx-txprocessor/pkg/safe"
)

var (
	// ErrMissingField is returned when a mandatory field is absent from a payload.
	ErrMissingField = errors.New("missing field")
)

// DecodeShardCount extracts the number of shards (without the metachain) from a network/config payload.
func DecodeShardCount(raw json.RawMessage) (uint32, error) {
	var resp networkConfigResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, fmt.Errorf("decode network config: %w", err)
	}
	if resp.Config == nil || resp.Config.NumShardsWithoutMeta == nil {
		return 0, fmt.Errorf("network config erd_num_shards_without_meta: %w", ErrMissingField)
	}
	count, err := safe.Uint32(*resp.Config.NumShardsWithoutMeta)
	if err != nil {
		return 0, fmt.Errorf("shard count overflow: %w", err)
	}
	return count, nil
}

// DecodeCurrentNonce extracts the current nonce from a network/status payload.
func DecodeCurrentNonce(raw json.RawMessage) (uint64, error) {
	var resp networkStatusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, fmt.Errorf("decode network status: %w", err)
	}
	if resp.Status == nil || resp.Status.Nonce == nil {
		return 0, fmt.Errorf("network status erd_nonce: %w", ErrMissingField)
	}
	return *resp.Status.Nonce, nil
}

// DecodeShardBlock decodes a block/{shard}/by-nonce payload.
// It returns nil when the payload carries no block, i.e. the nonce was not produced yet.
func DecodeShardBlock(raw json.RawMessage) (*model.Block, error) {
	if isEmpty(raw) {
		return nil, nil
	}
	var resp blockResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode block: %w", err)
	}
	if resp.Block == nil {
		return nil, nil
	}

	block := &model.Block{
		Hash:         resp.Block.Hash,
		Nonce:        resp.Block.Nonce,
		Round:        resp.Block.Round,
		Timestamp:    resp.Block.Timestamp,
		Transactions: []*model.ShardTransaction{},
	}
	if resp.Block.MiniBlocks == nil {
		return block, nil
	}

	miniBlocks := *resp.Block.MiniBlocks
	block.MiniBlockCount = len(miniBlocks)
	for _, mb := range miniBlocks {
		for _, item := range mb.Transactions {
			block.Transactions = append(block.Transactions, toShardTransaction(item))
		}
	}
	return block, nil
}

// DecodeHyperblock decodes a hyperblock/by-nonce payload.
// It returns nil when the payload carries no hyperblock.
func DecodeHyperblock(raw json.RawMessage) (*model.Block, error) {
	if isEmpty(raw) {
		return nil, nil
	}
	var resp hyperblockResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode hyperblock: %w", err)
	}
	if resp.Hyperblock == nil {
		return nil, nil
	}

	block := &model.Block{
		Hash:         resp.Hyperblock.Hash,
		Nonce:        resp.Hyperblock.Nonce,
		Round:        resp.Hyperblock.Round,
		Timestamp:    resp.Hyperblock.Timestamp,
		Transactions: []*model.ShardTransaction{},
	}
	if resp.Hyperblock.Transactions == nil {
		return block, nil
	}
	for _, item := range *resp.Hyperblock.Transactions {
		block.Transactions = append(block.Transactions, toShardTransaction(item))
	}
	return block, nil
}

// toShardTransaction projects a raw gateway transaction item field by field.
func toShardTransaction(item rawTransaction) *model.ShardTransaction {
	return &model.ShardTransaction{
		Value:                   item.Value,
		Data:                    item.Data,
		Hash:                    item.Hash,
		Sender:                  item.Sender,
		Receiver:                item.Receiver,
		Status:                  item.Status,
		SourceShard:             item.SourceShard,
		DestinationShard:        item.DestinationShard,
		Nonce:                   item.Nonce,
		PreviousTransactionHash: item.PreviousTransactionHash,
		OriginalTransactionHash: item.OriginalTransactionHash,
		GasPrice:                item.GasPrice,
		GasLimit:                item.GasLimit,
		Epoch:                   item.Epoch,
	}
}

func isEmpty(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
