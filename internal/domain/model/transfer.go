package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// KeyShareLen is the length of the x1 secret share blob.
	KeyShareLen = 32

	// AuthKeyLen is the length of a compressed secp256k1 public key.
	AuthKeyLen = 33
)

// TransferRecord is the unit of coordination: one pending ownership
// transfer for a statechain coin. At most one live record exists per
// StatechainID; a new admission for the same coin supersedes the old
// record entirely, including any previously attached message.
type TransferRecord struct {
	ID               uuid.UUID  `db:"id"`
	StatechainID     string     `db:"statechain_id"`
	RecipientAuthKey []byte     `db:"new_user_auth_public_key"`
	KeyShare         []byte     `db:"x1"`
	EncryptedMessage []byte     `db:"encrypted_transfer_msg"`
	BatchID          *string    `db:"batch_id"`
	BatchTime        *time.Time `db:"batch_time"`
	Locked           bool       `db:"locked"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// Batched reports whether the record belongs to a batch swap.
func (r *TransferRecord) Batched() bool {
	return r.BatchID != nil
}

// Coherent reports whether the record satisfies lock coherence:
// locked exactly when a batch id is present, and batch_time present
// exactly when batch_id is.
func (r *TransferRecord) Coherent() bool {
	if r.Locked != (r.BatchID != nil) {
		return false
	}
	return (r.BatchID == nil) == (r.BatchTime == nil)
}

// BatchMembership is the settled batch view of a coin's record, consumed
// by external settlement logic to decide whether/when a swap executes.
type BatchMembership struct {
	BatchID   string
	BatchTime time.Time
}

// ValidateAuthKey checks that b looks like a compressed secp256k1 public
// key. The key is otherwise treated as an opaque blob.
func ValidateAuthKey(b []byte) error {
	if len(b) != AuthKeyLen {
		return fmt.Errorf("auth key must be %d bytes, got %d", AuthKeyLen, len(b))
	}
	if b[0] != 0x02 && b[0] != 0x03 {
		return fmt.Errorf("auth key has invalid compression prefix 0x%02x", b[0])
	}
	return nil
}

// ValidateKeyShare checks the x1 blob length. The share itself is opaque
// to the server.
func ValidateKeyShare(b []byte) error {
	if len(b) != KeyShareLen {
		return fmt.Errorf("key share must be %d bytes, got %d", KeyShareLen, len(b))
	}
	return nil
}
