package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ssantos21/mercurylayer/internal/domain/model"
)

// TxBeginner abstracts the ability to begin a database transaction.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// TransferRepository provides access to statechain transfer records.
//
// *Tx variants run inside a caller-owned transaction; the others execute
// as single atomic statements against the pool. None of them cache state
// between calls.
type TransferRepository interface {
	// Exists reports whether a record already exists for the coin with a
	// matching recipient auth key, and a matching batch id when one is
	// supplied. Storage failures are returned as errors, never folded
	// into a false result.
	Exists(ctx context.Context, statechainID string, authKey []byte, batchID *string) (bool, error)

	// DeleteByCoinTx removes any existing record for the coin.
	DeleteByCoinTx(ctx context.Context, tx *sql.Tx, statechainID string) error

	// InsertTx installs a new record for the coin.
	InsertTx(ctx context.Context, tx *sql.Tx, rec *model.TransferRecord) error

	// Get returns the live record for the coin, or nil if none exists.
	Get(ctx context.Context, statechainID string) (*model.TransferRecord, error)

	// AttachMessage sets encrypted_transfer_msg and bumps updated_at for
	// the record matching (coin, auth key), but only if that record holds
	// the maximum updated_at for the coin. The compare and the write are
	// fused into one statement. Returns the number of rows updated.
	AttachMessage(ctx context.Context, statechainID string, authKey, msg []byte) (int64, error)

	// HasRecordForKey reports whether any record matches (coin, auth key),
	// regardless of freshness. Used to tell a missing record apart from a
	// stale one after AttachMessage touches zero rows.
	HasRecordForKey(ctx context.Context, statechainID string, authKey []byte) (bool, error)

	// LookupBatch returns the batch membership of the coin's record when
	// both batch_id and batch_time are set, or nil otherwise.
	LookupBatch(ctx context.Context, statechainID string) (*model.BatchMembership, error)

	// CountByCoin returns the number of records for the coin. Anything
	// above one is an invariant violation.
	CountByCoin(ctx context.Context, statechainID string) (int64, error)
}

// BatchRepository provides access to batch commencement times.
type BatchRepository interface {
	// ClaimTime records candidate as the commencement time for the batch
	// if none exists yet, and returns the authoritative time either way.
	// The insert-or-fetch is a single atomic statement, so concurrent
	// first joiners resolve to exactly one winner.
	ClaimTime(ctx context.Context, batchID string, candidate time.Time) (time.Time, error)

	// ClaimTimeTx is ClaimTime inside a caller-owned transaction.
	ClaimTimeTx(ctx context.Context, tx *sql.Tx, batchID string, candidate time.Time) (time.Time, error)

	// IsLocked reports whether at least one transfer record of the batch
	// is locked.
	IsLocked(ctx context.Context, batchID string) (bool, error)
}
