package model

// Notification carries the transactions delivered for one shard at one nonce.
type Notification struct {
	ShardID      ShardID
	Nonce        uint64
	Round        uint64
	Timestamp    uint64
	BlockHash    string
	Transactions []*ShardTransaction
	Statistics   TransactionStatistics
}

// PendingNotification carries transactions withheld while their cross-shard results are outstanding.
type PendingNotification struct {
	ShardID      ShardID
	Nonce        uint64
	Round        uint64
	Timestamp    uint64
	Transactions []*ShardTransaction
}
