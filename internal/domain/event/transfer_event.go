package event

import (
	"time"

	"github.com/google/uuid"
)

// TransferEventType identifies what happened to a transfer record.
type TransferEventType string

const (
	// TransferAdmitted fires when an admission installs a new record,
	// superseding any prior one for the coin.
	TransferAdmitted TransferEventType = "transfer_admitted"

	// TransferMessageAttached fires when the encrypted hand-off message
	// is deposited into a record.
	TransferMessageAttached TransferEventType = "transfer_message_attached"

	// BatchTimeMinted fires when a batch receives its commencement time,
	// i.e. the first member joined.
	BatchTimeMinted TransferEventType = "batch_time_minted"
)

// TransferEvent is the notification published to the downstream
// settlement/expiry process. It carries identifiers only; key material
// never leaves the store.
type TransferEvent struct {
	ID           uuid.UUID         `json:"id"`
	Type         TransferEventType `json:"type"`
	StatechainID string            `json:"statechain_id,omitempty"`
	BatchID      *string           `json:"batch_id,omitempty"`
	BatchTime    *time.Time        `json:"batch_time,omitempty"`
	OccurredAt   time.Time         `json:"occurred_at"`
}
