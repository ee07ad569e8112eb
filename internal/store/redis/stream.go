package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/ssantos21/mercurylayer/internal/circuitbreaker"
	"github.com/ssantos21/mercurylayer/internal/domain/event"
)

// DefaultStreamKey is the Redis Stream the settlement/expiry process
// consumes transfer events from.
const DefaultStreamKey = "mercury:transfer_events"

// maxStreamLen caps the stream with approximate trimming so an idle
// consumer cannot grow it without bound.
const maxStreamLen = 100_000

// Stream publishes transfer events to a Redis Stream.
type Stream struct {
	client *redis.Client
	key    string
}

func NewStream(url, key string) (*Stream, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if key == "" {
		key = DefaultStreamKey
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Stream{client: client, key: key}, nil
}

func (s *Stream) Publish(ctx context.Context, ev event.TransferEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal transfer event: %w", err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.key,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]any{
			"type":    string(ev.Type),
			"payload": payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish transfer event: %w", err)
	}
	return nil
}

func (s *Stream) Close() error {
	return s.client.Close()
}

// publisher is the event sink side of a stream, satisfied by Stream and
// InMemoryStream.
type publisher interface {
	Publish(ctx context.Context, ev event.TransferEvent) error
}

// GuardedStream wraps a stream publisher with a circuit breaker so a dead
// broker sheds publishes quickly instead of stalling every admission on a
// connect timeout.
type GuardedStream struct {
	inner   publisher
	breaker *circuitbreaker.Breaker
}

func NewGuardedStream(inner publisher, breaker *circuitbreaker.Breaker) *GuardedStream {
	return &GuardedStream{inner: inner, breaker: breaker}
}

func (g *GuardedStream) Publish(ctx context.Context, ev event.TransferEvent) error {
	return g.breaker.Do(func() error {
		return g.inner.Publish(ctx, ev)
	})
}

// InMemoryStream is a process-local transport for development and tests.
type InMemoryStream struct {
	mu     sync.Mutex
	events []event.TransferEvent
}

func NewInMemoryStream() *InMemoryStream {
	return &InMemoryStream{}
}

func (s *InMemoryStream) Publish(_ context.Context, ev event.TransferEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

// Events returns a snapshot of everything published so far.
func (s *InMemoryStream) Events() []event.TransferEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.TransferEvent, len(s.events))
	copy(out, s.events)
	return out
}
