package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type BatchRepo struct {
	db *DB
}

func NewBatchRepo(db *DB) *BatchRepo {
	return &BatchRepo{db: db}
}

// claimTimeSQL inserts the candidate commencement time for a batch and
// returns whichever time actually governs the batch. The DO UPDATE is a
// no-op write on conflict, which lets RETURNING yield the existing row;
// first writer wins and every later joiner reads that same value.
const claimTimeSQL = `
	INSERT INTO transfer_batch (batch_id, batch_time)
	VALUES ($1, $2)
	ON CONFLICT (batch_id) DO UPDATE SET batch_id = EXCLUDED.batch_id
	RETURNING batch_time
`

func (r *BatchRepo) ClaimTime(ctx context.Context, batchID string, candidate time.Time) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var t time.Time
	if err := r.db.QueryRowContext(ctx, claimTimeSQL, batchID, candidate).Scan(&t); err != nil {
		return time.Time{}, fmt.Errorf("claim batch time: %w", err)
	}
	return t, nil
}

func (r *BatchRepo) ClaimTimeTx(ctx context.Context, tx *sql.Tx, batchID string, candidate time.Time) (time.Time, error) {
	var t time.Time
	if err := tx.QueryRowContext(ctx, claimTimeSQL, batchID, candidate).Scan(&t); err != nil {
		return time.Time{}, fmt.Errorf("claim batch time: %w", err)
	}
	return t, nil
}

func (r *BatchRepo) IsLocked(ctx context.Context, batchID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var locked bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM statechain_transfer
			WHERE batch_id = $1 AND locked = TRUE
		)
	`, batchID).Scan(&locked)
	if err != nil {
		return false, fmt.Errorf("check batch locked: %w", err)
	}
	return locked, nil
}
