package transfer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ssantos21/mercurylayer/internal/metrics"
	"github.com/ssantos21/mercurylayer/internal/store"
)

// Coordinator assigns the shared commencement time for coins transferring
// together under one batch id. The first joiner fixes the time; every
// later joiner reads that same value. The claim is one conditional upsert
// at the store, so concurrent first joiners resolve to exactly one winner
// without a read-then-write window.
type Coordinator struct {
	batches store.BatchRepository
	logger  *slog.Logger
	now     func() time.Time
}

func NewCoordinator(batches store.BatchRepository, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		batches: batches,
		logger:  logger.With("component", "batch_coordinator"),
		now:     time.Now,
	}
}

// candidateTime truncates to microseconds so the value survives a
// TIMESTAMPTZ round trip intact and minting can be detected by equality.
func (c *Coordinator) candidateTime() time.Time {
	return c.now().UTC().Truncate(time.Microsecond)
}

// JoinOrGetBatchTime returns the commencement time for the batch, minting
// the current time if the batch has never been seen.
func (c *Coordinator) JoinOrGetBatchTime(ctx context.Context, batchID string) (time.Time, error) {
	if batchID == "" {
		return time.Time{}, fmt.Errorf("batch id is empty")
	}

	candidate := c.candidateTime()
	t, err := c.batches.ClaimTime(ctx, batchID, candidate)
	if err != nil {
		return time.Time{}, fmt.Errorf("join batch %q: %w", batchID, err)
	}

	metrics.BatchJoinsTotal.Inc()
	if t.Equal(candidate) {
		metrics.BatchTimesMinted.Inc()
		c.logger.Info("batch commencement time minted", "batch_id", batchID, "batch_time", t)
	}
	return t, nil
}

// joinTx claims the batch time inside an admission transaction, so the
// mint commits or rolls back together with the record it belongs to.
func (c *Coordinator) joinTx(ctx context.Context, tx *sql.Tx, batchID string) (t time.Time, minted bool, err error) {
	candidate := c.candidateTime()
	t, err = c.batches.ClaimTimeTx(ctx, tx, batchID, candidate)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("join batch %q: %w", batchID, err)
	}
	return t, t.Equal(candidate), nil
}

// IsLocked reports whether at least one record of the batch is locked.
// Consumed by the external settlement/expiry process.
func (c *Coordinator) IsLocked(ctx context.Context, batchID string) (bool, error) {
	locked, err := c.batches.IsLocked(ctx, batchID)
	if err != nil {
		return false, fmt.Errorf("batch %q lock state: %w", batchID, err)
	}
	return locked, nil
}
