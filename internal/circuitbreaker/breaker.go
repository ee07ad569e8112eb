package circuitbreaker

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker rejects a call without running it.
var ErrOpen = errors.New("circuit breaker open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Breaker trips after a run of consecutive failures and rejects calls
// until a cooldown elapses, then lets probes through half-open until
// enough succeed to close again.
type Breaker struct {
	name        string
	maxFailures int
	probeQuota  int
	cooldown    time.Duration
	logger      *slog.Logger
	now         func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	probeHits int
	openedAt  time.Time
}

type Config struct {
	Name        string
	MaxFailures int           // consecutive failures before tripping (default 5)
	ProbeQuota  int           // half-open successes needed to close (default 2)
	Cooldown    time.Duration // open duration before probing (default 30s)
}

func New(cfg Config, logger *slog.Logger) *Breaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.ProbeQuota <= 0 {
		cfg.ProbeQuota = 2
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	return &Breaker{
		name:        cfg.Name,
		maxFailures: cfg.MaxFailures,
		probeQuota:  cfg.ProbeQuota,
		cooldown:    cfg.Cooldown,
		logger:      logger.With("component", "circuit_breaker", "breaker", cfg.Name),
		now:         time.Now,
	}
}

// Do runs fn unless the breaker is open, recording the outcome.
func (b *Breaker) Do(fn func() error) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := fn()
	b.record(err == nil)
	return err
}

// State reports the current state, promoting open to half-open once the
// cooldown has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeProbe()
	return b.state
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeProbe()
	if b.state == StateOpen {
		return ErrOpen
	}
	return nil
}

func (b *Breaker) record(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ok {
		b.failures = 0
		if b.state == StateHalfOpen {
			b.probeHits++
			if b.probeHits >= b.probeQuota {
				b.transition(StateClosed)
			}
		}
		return
	}

	b.failures++
	switch {
	case b.state == StateHalfOpen:
		b.openedAt = b.now()
		b.transition(StateOpen)
	case b.state == StateClosed && b.failures >= b.maxFailures:
		b.openedAt = b.now()
		b.transition(StateOpen)
	}
}

// maybeProbe moves an open breaker to half-open after the cooldown.
// Callers must hold b.mu.
func (b *Breaker) maybeProbe() {
	if b.state == StateOpen && b.now().Sub(b.openedAt) > b.cooldown {
		b.transition(StateHalfOpen)
	}
}

func (b *Breaker) transition(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	b.probeHits = 0
	if to == StateClosed {
		b.failures = 0
	}
	b.logger.Warn("circuit breaker state change", "from", from.String(), "to", to.String())
}
