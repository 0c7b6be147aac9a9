package processor

import (
	"fmt"
	"sort"
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
)

// reconciler correlates smart contract results across shards.
// Entries are keyed by the hash of the transaction that started the cross-shard chain.
type reconciler struct {
	pending map[string]*model.CrossShardTransaction
	// undo holds the state of every entry touched since begin; nil marks an absent entry.
	undo     map[string]*model.CrossShardTransaction
	ttl      time.Duration
	now      func() time.Time
	messages MessageLogger
}

func newReconciler(messages MessageLogger, now func() time.Time) *reconciler {
	return &reconciler{
		pending:  make(map[string]*model.CrossShardTransaction),
		ttl:      crossShardTTL,
		now:      now,
		messages: messages,
	}
}

// reconcile updates pending counters with the batch observed on shardID and
// returns the originating transactions whose results are now complete.
func (r *reconciler) reconcile(shardID model.ShardID, transactions []*model.ShardTransaction) []*model.ShardTransaction {
	byHash := make(map[string]*model.ShardTransaction, len(transactions))
	for _, tx := range transactions {
		if _, ok := byHash[tx.Hash]; !ok {
			byHash[tx.Hash] = tx
		}
	}

	// outgoing results: from this shard to another one
	for _, tx := range transactions {
		if tx.OriginalTransactionHash == "" || tx.SourceShard != shardID || tx.DestinationShard == shardID {
			continue
		}
		item, ok := r.pending[tx.OriginalTransactionHash]
		if !ok {
			r.logf("Creating dictionary for original tx hash %s", tx.OriginalTransactionHash)
			original, found := byHash[tx.OriginalTransactionHash]
			if !found {
				r.logf("Could not identify transaction with hash %s in transaction list", tx.OriginalTransactionHash)
				continue
			}
			r.touch(tx.OriginalTransactionHash)
			item = model.NewCrossShardTransaction(original, r.now())
			r.pending[tx.OriginalTransactionHash] = item
		}
		if tx.IsSuccessResult() {
			r.logf("Not incrementing counter for cross-shard SCR, original tx hash %s, tx hash %s since the data is @ok",
				tx.OriginalTransactionHash, tx.Hash)
			continue
		}
		r.touch(tx.OriginalTransactionHash)
		item.Counter++
		r.logf("Detected new cross-shard SCR for original tx hash %s, tx hash %s, counter = %d",
			tx.OriginalTransactionHash, tx.Hash, item.Counter)
	}

	// incoming results: from another shard to this one
	for _, tx := range transactions {
		if tx.OriginalTransactionHash == "" || tx.SourceShard == shardID || tx.DestinationShard != shardID {
			continue
		}
		item, ok := r.pending[tx.OriginalTransactionHash]
		if !ok {
			r.logf("No counter available for cross-shard SCR, original tx hash %s, tx hash %s",
				tx.OriginalTransactionHash, tx.Hash)
			continue
		}
		if tx.IsSuccessResult() {
			r.logf("Not decrementing counter for cross-shard SCR, original tx hash %s, tx hash %s since the data is @ok",
				tx.OriginalTransactionHash, tx.Hash)
			continue
		}
		r.touch(tx.OriginalTransactionHash)
		item.Counter--
		r.logf("Finalized cross-shard SCR for original tx hash %s, tx hash %s, counter = %d",
			tx.OriginalTransactionHash, tx.Hash, item.Counter)
	}

	var completed []*model.CrossShardTransaction
	for hash, item := range r.pending {
		if item.Counter != 0 {
			continue
		}
		r.logf("Completed cross-shard transaction for original tx hash %s", hash)
		if _, inBatch := byHash[hash]; !inBatch {
			completed = append(completed, item)
		}
		r.touch(hash)
		delete(r.pending, hash)
	}

	sort.Slice(completed, func(i, j int) bool {
		if !completed[i].Created.Equal(completed[j].Created) {
			return completed[i].Created.Before(completed[j].Created)
		}
		return completed[i].Transaction.Hash < completed[j].Transaction.Hash
	})
	out := make([]*model.ShardTransaction, 0, len(completed))
	for _, item := range completed {
		out = append(out, item.Transaction)
	}
	return out
}

// begin starts recording changes so the next rollback can undo them.
func (r *reconciler) begin() {
	r.undo = make(map[string]*model.CrossShardTransaction)
}

// commit keeps the changes made since begin.
func (r *reconciler) commit() {
	r.undo = nil
}

// rollback restores every entry touched since begin.
func (r *reconciler) rollback() {
	for hash, saved := range r.undo {
		if saved == nil {
			delete(r.pending, hash)
			continue
		}
		r.pending[hash] = saved
	}
	r.undo = nil
}

// touch saves the state of hash the first time it changes after begin.
func (r *reconciler) touch(hash string) {
	if r.undo == nil {
		return
	}
	if _, saved := r.undo[hash]; saved {
		return
	}
	item, ok := r.pending[hash]
	if !ok {
		r.undo[hash] = nil
		return
	}
	snapshot := *item
	r.undo[hash] = &snapshot
}

// isPending reports whether hash started a chain whose results are still outstanding.
func (r *reconciler) isPending(hash string) bool {
	_, ok := r.pending[hash]
	return ok
}

// prune drops entries older than the ttl regardless of their counter.
func (r *reconciler) prune() int {
	now := r.now()
	pruned := 0
	for hash, item := range r.pending {
		elapsed := now.Sub(item.Created)
		if elapsed <= r.ttl {
			continue
		}
		r.logf("Pruning transaction with hash %s since its elapsed time is %.3f seconds", hash, elapsed.Seconds())
		delete(r.pending, hash)
		pruned++
	}
	return pruned
}

func (r *reconciler) len() int {
	return len(r.pending)
}

func (r *reconciler) logf(format string, args ...any) {
	r.messages.LogMessage(model.TopicCrossShardSmartContractResult, fmt.Sprintf(format, args...))
}
