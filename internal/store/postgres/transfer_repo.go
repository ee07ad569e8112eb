package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ssantos21/mercurylayer/internal/domain/model"
)

type TransferRepo struct {
	db *DB
}

func NewTransferRepo(db *DB) *TransferRepo {
	return &TransferRepo{db: db}
}

func (r *TransferRepo) Exists(ctx context.Context, statechainID string, authKey []byte, batchID *string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(`
		SELECT COUNT(*)
		FROM statechain_transfer
		WHERE statechain_id = $1 AND new_user_auth_public_key = $2`)
	args := []any{statechainID, authKey}
	if batchID != nil {
		sb.WriteString(" AND batch_id = $3")
		args = append(args, *batchID)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, sb.String(), args...).Scan(&count); err != nil {
		return false, fmt.Errorf("count transfers: %w", err)
	}
	return count > 0, nil
}

func (r *TransferRepo) DeleteByCoinTx(ctx context.Context, tx *sql.Tx, statechainID string) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM statechain_transfer WHERE statechain_id = $1
	`, statechainID)
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}

func (r *TransferRepo) InsertTx(ctx context.Context, tx *sql.Tx, rec *model.TransferRecord) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO statechain_transfer (
			statechain_id, new_user_auth_public_key, x1,
			batch_id, batch_time, locked
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, rec.StatechainID, rec.RecipientAuthKey, rec.KeyShare,
		rec.BatchID, rec.BatchTime, rec.Locked,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

func (r *TransferRepo) Get(ctx context.Context, statechainID string) (*model.TransferRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var rec model.TransferRecord
	err := r.db.QueryRowContext(ctx, `
		SELECT id, statechain_id, new_user_auth_public_key, x1,
		       encrypted_transfer_msg, batch_id, batch_time, locked,
		       created_at, updated_at
		FROM statechain_transfer
		WHERE statechain_id = $1
	`, statechainID).Scan(
		&rec.ID, &rec.StatechainID, &rec.RecipientAuthKey, &rec.KeyShare,
		&rec.EncryptedMessage, &rec.BatchID, &rec.BatchTime, &rec.Locked,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &rec, nil
}

// AttachMessage fuses the freshness check and the write into one UPDATE:
// only the row currently holding the coin's maximum updated_at accepts
// the message, so a writer holding a superseded record touches nothing.
func (r *TransferRepo) AttachMessage(ctx context.Context, statechainID string, authKey, msg []byte) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE statechain_transfer
		SET encrypted_transfer_msg = $1, updated_at = now()
		WHERE statechain_id = $2
		  AND new_user_auth_public_key = $3
		  AND updated_at = (
			SELECT MAX(updated_at) FROM statechain_transfer WHERE statechain_id = $2
		  )
	`, msg, statechainID, authKey)
	if err != nil {
		return 0, fmt.Errorf("attach transfer msg: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("attach transfer msg rows: %w", err)
	}
	return rows, nil
}

func (r *TransferRepo) HasRecordForKey(ctx context.Context, statechainID string, authKey []byte) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM statechain_transfer
			WHERE statechain_id = $1 AND new_user_auth_public_key = $2
		)
	`, statechainID, authKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check transfer for key: %w", err)
	}
	return exists, nil
}

func (r *TransferRepo) LookupBatch(ctx context.Context, statechainID string) (*model.BatchMembership, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var m model.BatchMembership
	err := r.db.QueryRowContext(ctx, `
		SELECT batch_id, batch_time
		FROM statechain_transfer
		WHERE statechain_id = $1
		  AND batch_id IS NOT NULL
		  AND batch_time IS NOT NULL
	`, statechainID).Scan(&m.BatchID, &m.BatchTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup batch: %w", err)
	}
	return &m, nil
}

func (r *TransferRepo) CountByCoin(ctx context.Context, statechainID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM statechain_transfer WHERE statechain_id = $1
	`, statechainID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transfers for coin: %w", err)
	}
	return count, nil
}
