package transfer

import "errors"

// Recoverable and fatal outcomes of transfer operations. Storage failures
// that match none of these sentinels are transient infrastructure errors
// and are propagated wrapped, never folded into a negative result.
var (
	// ErrNotFound means the targeted record does not exist. Expected in
	// normal operation.
	ErrNotFound = errors.New("transfer record not found")

	// ErrConflictingWrite means a conditional update did not apply because
	// a newer record superseded the caller's view. The caller should
	// re-fetch and decide whether to retry.
	ErrConflictingWrite = errors.New("transfer record superseded by a newer admission")

	// ErrInvariantViolation means the store holds state inconsistent with
	// the transfer invariants, such as two live records for one coin. It
	// is never auto-repaired.
	ErrInvariantViolation = errors.New("store state violates transfer invariants")
)
