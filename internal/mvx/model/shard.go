// Package model defines domain models for MultiversX transaction processing.
package model

import "strconv"

// ShardID identifies a shard of the network.
type ShardID uint32

// Metachain is the coordination shard.
const Metachain ShardID = 4294967295

// String returns the decimal representation used by gateway paths.
func (s ShardID) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// IsMetachain reports whether s is the metachain.
func (s ShardID) IsMetachain() bool {
	return s == Metachain
}

// ShardIDs builds the active shard set: shardCount regular shards followed by the metachain.
func ShardIDs(shardCount uint32) []ShardID {
	ids := make([]ShardID, 0, shardCount+1)
	for i := uint32(0); i < shardCount; i++ {
		ids = append(ids, ShardID(i))
	}
	return append(ids, Metachain)
}

// Mode selects how the processor walks the chain.
type Mode string

const (
	// ModeShardblock processes every shard's own block sequence.
	ModeShardblock Mode = "Shardblock"
	// ModeHyperblock processes metachain hyperblocks.
	ModeHyperblock Mode = "Hyperblock"
)

// LogTopic classifies messages emitted by the processor.
type LogTopic string

const (
	TopicCrossShardSmartContractResult LogTopic = "CrossShardSmartContractResult"
	TopicDebug                         LogTopic = "Debug"
	TopicError                         LogTopic = "Error"
)
