package model

import (
	"encoding/base64"
	"strings"
	"sync"
	"time"
)

// SuccessMarker is the decoded data of an "@ok" smart contract result.
const SuccessMarker = "@6f6b"

// ShardTransaction is a transaction as observed on one shard.
// It must not be modified after construction; derived data fields are cached on first access.
type ShardTransaction struct {
	Value                   string  `json:"value"`
	Data                    string  `json:"data,omitempty"`
	Hash                    string  `json:"hash"`
	Sender                  string  `json:"sender"`
	Receiver                string  `json:"receiver"`
	Status                  string  `json:"status"`
	SourceShard             ShardID `json:"sourceShard"`
	DestinationShard        ShardID `json:"destinationShard"`
	Nonce                   uint64  `json:"nonce"`
	PreviousTransactionHash string  `json:"previousTransactionHash,omitempty"`
	OriginalTransactionHash string  `json:"originalTransactionHash,omitempty"`
	GasPrice                *uint64 `json:"gasPrice,omitempty"`
	GasLimit                *uint64 `json:"gasLimit,omitempty"`
	Epoch                   uint32  `json:"epoch"`

	decodeOnce   sync.Once
	decoded      string
	decodedOK    bool
	functionName string
	args         []string
}

// DecodedData returns the base64-decoded data field and whether it was present and decodable.
func (t *ShardTransaction) DecodedData() (string, bool) {
	t.decode()
	return t.decoded, t.decodedOK
}

// FunctionName returns the text before the first '@' of the decoded data.
func (t *ShardTransaction) FunctionName() string {
	t.decode()
	return t.functionName
}

// Args returns the '@'-delimited hex arguments following the function name.
func (t *ShardTransaction) Args() []string {
	t.decode()
	if t.args == nil {
		return nil
	}
	out := make([]string, len(t.args))
	copy(out, t.args)
	return out
}

// IsSuccessResult reports whether the transaction carries the "@ok" payload.
func (t *ShardTransaction) IsSuccessResult() bool {
	decoded, ok := t.DecodedData()
	return ok && decoded == SuccessMarker
}

func (t *ShardTransaction) decode() {
	t.decodeOnce.Do(func() {
		if t.Data == "" {
			return
		}
		decoded, ok := DecodeData(t.Data)
		if !ok {
			return
		}
		t.decoded = decoded
		t.decodedOK = true

		parts := strings.Split(decoded, "@")
		t.functionName = parts[0]
		t.args = parts[1:]
	})
}

// DecodeData decodes a base64 transaction data field.
// Payloads whose arguments were appended in clear ("<base64>@<hex>@<hex>") decode the
// leading segment only and keep the arguments verbatim.
func DecodeData(data string) (string, bool) {
	if b, err := base64.StdEncoding.DecodeString(data); err == nil {
		return string(b), true
	}
	if b, err := base64.RawStdEncoding.DecodeString(data); err == nil {
		return string(b), true
	}

	head, tail, found := strings.Cut(data, "@")
	if !found {
		return "", false
	}
	b, err := base64.StdEncoding.DecodeString(head)
	if err != nil {
		if b, err = base64.RawStdEncoding.DecodeString(head); err != nil {
			return "", false
		}
	}
	return string(b) + "@" + tail, true
}

// CrossShardTransaction tracks an originating transaction awaiting smart contract results on other shards.
type CrossShardTransaction struct {
	Transaction *ShardTransaction
	Counter     int
	Created     time.Time
}

// NewCrossShardTransaction wraps tx with a zero counter.
func NewCrossShardTransaction(tx *ShardTransaction, created time.Time) *CrossShardTransaction {
	return &CrossShardTransaction{
		Transaction: tx,
		Created:     created,
	}
}

// Block is a decoded shard block or hyperblock.
type Block struct {
	Hash           string
	Nonce          uint64
	Round          uint64
	Timestamp      uint64
	MiniBlockCount int
	Transactions   []*ShardTransaction
}

// TransactionStatistics describes catch-up progress at the time of a notification.
type TransactionStatistics struct {
	SecondsElapsed  float64 `json:"secondsElapsed"`
	ProcessedNonces uint64  `json:"processedNonces"`
	NoncesPerSecond float64 `json:"noncesPerSecond"`
	NoncesLeft      uint64  `json:"noncesLeft"`
	SecondsLeft     float64 `json:"secondsLeft"`
}
