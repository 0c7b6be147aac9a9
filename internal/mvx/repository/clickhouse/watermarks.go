package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/model"
)

const (
	selectWatermarkQuery = `
SELECT nonce
FROM mvx_watermarks FINAL
WHERE network = ? AND shard_id = ?
LIMIT 1`

	insertWatermarkQuery = `
INSERT INTO mvx_watermarks (
	network,
	shard_id,
	nonce,
	updated_at
) VALUES (?, ?, ?, ?)`
)

// GetLastProcessedNonce returns the stored watermark of a shard; ok is false when none was stored yet.
func (r *Repository) GetLastProcessedNonce(ctx context.Context, shardID model.ShardID, _ uint64) (nonce uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_last_processed_nonce", backend, err, start)
	}()

	row := r.conn.QueryRow(ctx, selectWatermarkQuery, r.network, uint32(shardID))
	if err = row.Scan(&nonce); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
			return 0, false, nil
		}
		err = fmt.Errorf("scan watermark for shard %s: %w", shardID, err)
		return 0, false, err
	}
	return nonce, true, nil
}

// SetLastProcessedNonce stores the watermark of a shard. The table keeps the latest version per shard.
func (r *Repository) SetLastProcessedNonce(ctx context.Context, shardID model.ShardID, nonce uint64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("set_last_processed_nonce", backend, err, start)
	}()

	if err = r.conn.Exec(ctx, insertWatermarkQuery, r.network, uint32(shardID), nonce, r.now().UTC()); err != nil {
		err = fmt.Errorf("insert watermark for shard %s: %w", shardID, err)
		return err
	}
	return nil
}
