package gateway

import (
	"fmt"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
)

// NetworkConfigPath returns the path of the network configuration endpoint.
func NetworkConfigPath() string {
	return "network/config"
}

// NetworkStatusPath returns the path of the shard status endpoint.
func NetworkStatusPath(shardID model.ShardID) string {
	return fmt.Sprintf("network/status/%s", shardID)
}

// BlockByNoncePath returns the path of a shard block including its transactions.
func BlockByNoncePath(shardID model.ShardID, nonce uint64) string {
	return fmt.Sprintf("block/%s/by-nonce/%d?withTxs=true", shardID, nonce)
}

// HyperblockByNoncePath returns the path of a hyperblock.
func HyperblockByNoncePath(nonce uint64) string {
	return fmt.Sprintf("hyperblock/by-nonce/%d", nonce)
}
