// Package clickhouse stores processor watermarks and delivered transactions in ClickHouse.
package clickhouse

import (
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

const backend = "clickhouse"

// ErrEmptyDSN is returned when no DSN is configured.
var ErrEmptyDSN = errors.New("clickhouse dsn is required")

var _ Conn = clickhouse.Conn(nil)

type Repository struct {
	conn    Conn
	metrics Metrics
	network string
	now     func() time.Time
}

// NewRepository opens a ClickHouse connection. Rows are scoped to network so
// several networks can share the same tables.
func NewRepository(dsn, network string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: conn, metrics: metrics, network: network, now: time.Now}, nil
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	return r.conn.Close()
}
