package decoder

import "github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"

type networkConfigResponse struct {
	Config *struct {
		NumShardsWithoutMeta *int64 `json:"erd_num_shards_without_meta"`
	} `json:"config"`
}

type networkStatusResponse struct {
	Status *struct {
		Nonce *uint64 `json:"erd_nonce"`
	} `json:"status"`
}

type blockResponse struct {
	Block *rawBlock `json:"block"`
}

type hyperblockResponse struct {
	Hyperblock *rawHyperblock `json:"hyperblock"`
}

type rawBlock struct {
	Hash       string          `json:"hash"`
	Nonce      uint64          `json:"nonce"`
	Round      uint64          `json:"round"`
	Timestamp  uint64          `json:"timestamp"`
	MiniBlocks *[]rawMiniBlock `json:"miniBlocks"`
}

type rawMiniBlock struct {
	Hash         string           `json:"hash"`
	Transactions []rawTransaction `json:"transactions"`
}

type rawHyperblock struct {
	Hash         string            `json:"hash"`
	Nonce        uint64            `json:"nonce"`
	Round        uint64            `json:"round"`
	Timestamp    uint64            `json:"timestamp"`
	Transactions *[]rawTransaction `json:"transactions"`
}

type rawTransaction struct {
	Value                   string        `json:"value"`
	Data                    string        `json:"data"`
	Hash                    string        `json:"hash"`
	Sender                  string        `json:"sender"`
	Receiver                string        `json:"receiver"`
	Status                  string        `json:"status"`
	SourceShard             model.ShardID `json:"sourceShard"`
	DestinationShard        model.ShardID `json:"destinationShard"`
	Nonce                   uint64        `json:"nonce"`
	PreviousTransactionHash string        `json:"previousTransactionHash"`
	OriginalTransactionHash string        `json:"originalTransactionHash"`
	GasPrice                *uint64       `json:"gasPrice"`
	GasLimit                *uint64       `json:"gasLimit"`
	Epoch                   uint32        `json:"epoch"`
}
