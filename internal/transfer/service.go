package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ssantos21/mercurylayer/internal/domain/event"
	"github.com/ssantos21/mercurylayer/internal/domain/model"
	"github.com/ssantos21/mercurylayer/internal/metrics"
	"github.com/ssantos21/mercurylayer/internal/store"
	"github.com/ssantos21/mercurylayer/internal/tracing"
)

// EventPublisher delivers transfer events to the downstream settlement
// stream. Publishing is best-effort: the store commit is authoritative.
type EventPublisher interface {
	Publish(ctx context.Context, ev event.TransferEvent) error
}

// Service is the transfer coordination engine: admission, duplicate
// detection, message attachment, and batch lookups. All state lives in
// the store; nothing is cached between calls.
type Service struct {
	db          store.TxBeginner
	transfers   store.TransferRepository
	coordinator *Coordinator
	events      EventPublisher
	logger      *slog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

func NewService(
	db store.TxBeginner,
	transfers store.TransferRepository,
	coordinator *Coordinator,
	events EventPublisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		db:          db,
		transfers:   transfers,
		coordinator: coordinator,
		events:      events,
		logger:      logger.With("component", "transfer"),
		tracer:      tracing.Tracer("transfer"),
		now:         time.Now,
	}
}

// AdmitParams carries the inputs of a transfer admission.
type AdmitParams struct {
	StatechainID     string
	RecipientAuthKey []byte
	KeyShare         []byte
	BatchID          *string
}

func (p *AdmitParams) validate() error {
	if p.StatechainID == "" {
		return fmt.Errorf("statechain id is empty")
	}
	if err := model.ValidateAuthKey(p.RecipientAuthKey); err != nil {
		return err
	}
	if err := model.ValidateKeyShare(p.KeyShare); err != nil {
		return err
	}
	if p.BatchID != nil && *p.BatchID == "" {
		return fmt.Errorf("batch id is empty")
	}
	return nil
}

// Admit supersedes any prior pending transfer for the coin and installs
// the new one, joining a batch when requested. Delete, batch-time claim,
// and insert run in one transaction; a failure of any step leaves no
// partial effects behind.
//
// Admission does not re-check duplication: callers run Exists first, and
// re-admitting the same logical request simply resets the record.
func (s *Service) Admit(ctx context.Context, p AdmitParams) (*model.TransferRecord, error) {
	ctx, span := s.tracer.Start(ctx, "transfer.Admit",
		trace.WithAttributes(attribute.String("statechain_id", p.StatechainID)))
	defer span.End()

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("admit transfer: %w", err)
	}

	batched := p.BatchID != nil
	start := s.now()

	rec, minted, err := s.admitTx(ctx, p)
	if err != nil {
		metrics.AdmissionErrors.WithLabelValues(strconv.FormatBool(batched)).Inc()
		return nil, err
	}

	metrics.AdmissionsTotal.WithLabelValues(strconv.FormatBool(batched)).Inc()
	metrics.AdmissionLatency.Observe(s.now().Sub(start).Seconds())

	s.logger.Info("transfer admitted",
		"statechain_id", rec.StatechainID,
		"batched", batched,
		"locked", rec.Locked,
	)

	s.publish(ctx, event.TransferEvent{
		Type:         event.TransferAdmitted,
		StatechainID: rec.StatechainID,
		BatchID:      rec.BatchID,
		BatchTime:    rec.BatchTime,
	})
	if minted {
		s.publish(ctx, event.TransferEvent{
			Type:      event.BatchTimeMinted,
			BatchID:   rec.BatchID,
			BatchTime: rec.BatchTime,
		})
	}
	return rec, nil
}

func (s *Service) admitTx(ctx context.Context, p AdmitParams) (*model.TransferRecord, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin admission: %w", err)
	}
	defer tx.Rollback()

	rec := &model.TransferRecord{
		StatechainID:     p.StatechainID,
		RecipientAuthKey: p.RecipientAuthKey,
		KeyShare:         p.KeyShare,
	}

	minted := false
	if p.BatchID != nil {
		batchTime, m, err := s.coordinator.joinTx(ctx, tx, *p.BatchID)
		if err != nil {
			return nil, false, fmt.Errorf("admit transfer: %w", err)
		}
		rec.BatchID = p.BatchID
		rec.BatchTime = &batchTime
		rec.Locked = true
		minted = m
	}

	if err := s.transfers.DeleteByCoinTx(ctx, tx, p.StatechainID); err != nil {
		return nil, false, fmt.Errorf("admit transfer: %w", err)
	}
	if err := s.transfers.InsertTx(ctx, tx, rec); err != nil {
		return nil, false, fmt.Errorf("admit transfer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit admission: %w", err)
	}
	return rec, minted, nil
}

// Exists is the duplicate detector: it reports whether a transfer with
// the same coin and recipient auth key, and the same batch id when one is
// supplied, has already been requested. Batch membership is an exact
// match filter; a batched request is not suppressed by a non-batched
// record. Storage failures propagate, never a silent false.
func (s *Service) Exists(ctx context.Context, statechainID string, authKey []byte, batchID *string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "transfer.Exists")
	defer span.End()

	found, err := s.transfers.Exists(ctx, statechainID, authKey, batchID)
	if err != nil {
		metrics.DuplicateChecksTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("check duplicate transfer: %w", err)
	}

	result := "clear"
	if found {
		result = "duplicate"
	}
	metrics.DuplicateChecksTotal.WithLabelValues(result).Inc()
	return found, nil
}

// AttachMessage deposits the encrypted hand-off message into the coin's
// record for the given recipient key. The store applies it only to the
// record holding the coin's maximum updated_at, in a single statement.
// Returns ErrNotFound when no record matches the pair, and
// ErrConflictingWrite when a matching record exists but was superseded.
func (s *Service) AttachMessage(ctx context.Context, statechainID string, authKey, msg []byte) error {
	ctx, span := s.tracer.Start(ctx, "transfer.AttachMessage",
		trace.WithAttributes(attribute.String("statechain_id", statechainID)))
	defer span.End()

	if statechainID == "" {
		return fmt.Errorf("attach message: statechain id is empty")
	}
	if err := model.ValidateAuthKey(authKey); err != nil {
		return fmt.Errorf("attach message: %w", err)
	}
	if len(msg) == 0 {
		return fmt.Errorf("attach message: message is empty")
	}

	rows, err := s.transfers.AttachMessage(ctx, statechainID, authKey, msg)
	if err != nil {
		metrics.MessageAttachTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("attach message: %w", err)
	}

	switch {
	case rows == 1:
		metrics.MessageAttachTotal.WithLabelValues("applied").Inc()
		s.publish(ctx, event.TransferEvent{
			Type:         event.TransferMessageAttached,
			StatechainID: statechainID,
		})
		return nil
	case rows > 1:
		// The unique constraint makes this unreachable; if it fires the
		// store is corrupt and must not be repaired from here.
		metrics.MessageAttachTotal.WithLabelValues("invariant_violation").Inc()
		s.logger.Error("multiple records updated for one coin",
			"statechain_id", statechainID, "rows", rows)
		return fmt.Errorf("attach message for %q updated %d records: %w",
			statechainID, rows, ErrInvariantViolation)
	}

	return s.classifyUnappliedAttach(ctx, statechainID, authKey)
}

// classifyUnappliedAttach tells a missing record apart from a superseded
// one after a conditional attach touched zero rows.
func (s *Service) classifyUnappliedAttach(ctx context.Context, statechainID string, authKey []byte) error {
	exists, err := s.transfers.HasRecordForKey(ctx, statechainID, authKey)
	if err != nil {
		metrics.MessageAttachTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("classify unapplied attach: %w", err)
	}
	if !exists {
		metrics.MessageAttachTotal.WithLabelValues("not_found").Inc()
		return fmt.Errorf("attach message for %q: %w", statechainID, ErrNotFound)
	}

	count, err := s.transfers.CountByCoin(ctx, statechainID)
	if err != nil {
		metrics.MessageAttachTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("classify unapplied attach: %w", err)
	}
	if count > 1 {
		metrics.MessageAttachTotal.WithLabelValues("invariant_violation").Inc()
		s.logger.Error("multiple live records for one coin",
			"statechain_id", statechainID, "count", count)
		return fmt.Errorf("%d live records for %q: %w", count, statechainID, ErrInvariantViolation)
	}

	metrics.MessageAttachTotal.WithLabelValues("conflict").Inc()
	return fmt.Errorf("attach message for %q: %w", statechainID, ErrConflictingWrite)
}

// LookupBatch returns the batch membership of the coin's settled record,
// or nil when the coin has no record or is not part of a batch.
func (s *Service) LookupBatch(ctx context.Context, statechainID string) (*model.BatchMembership, error) {
	ctx, span := s.tracer.Start(ctx, "transfer.LookupBatch")
	defer span.End()

	m, err := s.transfers.LookupBatch(ctx, statechainID)
	if err != nil {
		return nil, fmt.Errorf("lookup batch for %q: %w", statechainID, err)
	}
	return m, nil
}

// publish sends an event to the settlement stream. Failures are logged
// and counted but never fail the operation: the store is the source of
// truth and the stream is advisory.
func (s *Service) publish(ctx context.Context, ev event.TransferEvent) {
	if s.events == nil {
		return
	}
	ev.ID = uuid.New()
	ev.OccurredAt = s.now().UTC()
	if err := s.events.Publish(ctx, ev); err != nil {
		metrics.EventPublishErrors.Inc()
		s.logger.Warn("transfer event publish failed", "type", ev.Type, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(string(ev.Type)).Inc()
}
