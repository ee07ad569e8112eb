package redis

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssantos21/mercurylayer/internal/circuitbreaker"
	"github.com/ssantos21/mercurylayer/internal/domain/event"
)

func TestNewStream_BadURL(t *testing.T) {
	_, err := NewStream("not-a-url", "")
	assert.Error(t, err)
}

func TestInMemoryStream_PublishAndSnapshot(t *testing.T) {
	s := NewInMemoryStream()

	batchID := "batchX"
	require.NoError(t, s.Publish(context.Background(), event.TransferEvent{
		Type:         event.TransferAdmitted,
		StatechainID: "coin1",
		BatchID:      &batchID,
	}))
	require.NoError(t, s.Publish(context.Background(), event.TransferEvent{
		Type:         event.TransferMessageAttached,
		StatechainID: "coin1",
	}))

	events := s.Events()
	require.Len(t, events, 2)
	assert.Equal(t, event.TransferAdmitted, events[0].Type)
	assert.Equal(t, event.TransferMessageAttached, events[1].Type)

	// Snapshot is a copy; mutating it must not affect the stream.
	events[0].StatechainID = "mutated"
	assert.Equal(t, "coin1", s.Events()[0].StatechainID)
}

type failingPublisher struct {
	err error
}

func (p *failingPublisher) Publish(context.Context, event.TransferEvent) error {
	return p.err
}

func TestGuardedStream_PassesThroughWhenClosed(t *testing.T) {
	inner := NewInMemoryStream()
	breaker := circuitbreaker.New(circuitbreaker.Config{Name: "test"}, slog.Default())
	g := NewGuardedStream(inner, breaker)

	require.NoError(t, g.Publish(context.Background(), event.TransferEvent{
		Type:         event.TransferAdmitted,
		StatechainID: "coin1",
	}))
	require.Len(t, inner.Events(), 1)
}

func TestGuardedStream_ShedsPublishesOnceTripped(t *testing.T) {
	inner := &failingPublisher{err: errors.New("broker down")}
	breaker := circuitbreaker.New(circuitbreaker.Config{Name: "test", MaxFailures: 2}, slog.Default())
	g := NewGuardedStream(inner, breaker)

	ev := event.TransferEvent{Type: event.TransferAdmitted, StatechainID: "coin1"}
	assert.EqualError(t, g.Publish(context.Background(), ev), "broker down")
	assert.EqualError(t, g.Publish(context.Background(), ev), "broker down")

	// Breaker is open now; the inner publisher is no longer reached.
	assert.ErrorIs(t, g.Publish(context.Background(), ev), circuitbreaker.ErrOpen)
}
