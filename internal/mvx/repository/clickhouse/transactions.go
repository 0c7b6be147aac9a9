package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
	"github.com/goodnatureofminers/mvx-txprocessor/pkg/safe"
)

const insertTransactionsQuery = `
INSERT INTO mvx_transactions (
	network,
	shard_id,
	block_nonce,
	block_hash,
	round,
	timestamp,
	hash,
	sender,
	receiver,
	value,
	data,
	function,
	status,
	source_shard,
	destination_shard,
	nonce,
	previous_transaction_hash,
	original_transaction_hash,
	gas_price,
	gas_limit,
	epoch
) VALUES`

// InsertTransactions stores the transactions of one received notification.
func (r *Repository) InsertTransactions(ctx context.Context, n model.Notification) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_transactions", backend, err, start)
	}()

	if len(n.Transactions) == 0 {
		return nil
	}

	seconds, err := safe.Int64(n.Timestamp)
	if err != nil {
		err = fmt.Errorf("block timestamp: %w", err)
		return err
	}
	blockTime := time.Unix(seconds, 0).UTC()

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionsQuery)
	if err != nil {
		err = fmt.Errorf("prepare transactions batch: %w", err)
		return err
	}

	for _, tx := range n.Transactions {
		if err = batch.Append(
			r.network,
			uint32(n.ShardID),
			n.Nonce,
			n.BlockHash,
			n.Round,
			blockTime,
			tx.Hash,
			tx.Sender,
			tx.Receiver,
			tx.Value,
			tx.Data,
			tx.FunctionName(),
			tx.Status,
			uint32(tx.SourceShard),
			uint32(tx.DestinationShard),
			tx.Nonce,
			tx.PreviousTransactionHash,
			tx.OriginalTransactionHash,
			tx.GasPrice,
			tx.GasLimit,
			tx.Epoch,
		); err != nil {
			_ = batch.Abort()
			err = fmt.Errorf("append transaction %s: %w", tx.Hash, err)
			return err
		}
	}

	if err = batch.Send(); err != nil {
		err = fmt.Errorf("insert transactions: %w", err)
		return err
	}
	return nil
}
