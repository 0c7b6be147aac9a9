package processor

import (
	"fmt"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
)

// Options tunes how a Processor walks the chain.
type Options struct {
	// Mode selects shard block or hyperblock processing. Empty means shard blocks.
	Mode model.Mode
	// MaxLookBehind bounds how many nonces behind the tip processing may start. Zero disables the bound.
	MaxLookBehind uint64
	// WaitForFinalizedCrossShardSmartContractResults withholds transactions until their cross-shard results arrive.
	WaitForFinalizedCrossShardSmartContractResults bool
	// NotifyEmptyBlocks notifies the consumer even when a block carries no deliverable transactions.
	NotifyEmptyBlocks bool
	// IncludeCrossShardStartedTransactions delivers transactions on their source shard as well.
	IncludeCrossShardStartedTransactions bool
}

// Validate checks that the options are consistent.
func (o Options) Validate() error {
	switch o.Mode {
	case "", model.ModeShardblock, model.ModeHyperblock:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, o.Mode)
	}
}

func (o Options) mode() model.Mode {
	if o.Mode == "" {
		return model.ModeShardblock
	}
	return o.Mode
}
