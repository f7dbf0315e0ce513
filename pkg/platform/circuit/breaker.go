// Package circuit guards calls to the remote licensing store.
package circuit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned without calling the guarded function while the
// breaker is rejecting calls.
var ErrOpen = errors.New("circuit open")

type State int

const (
	StateClosed State = iota
	StateOpen
	// StateHalfOpen lets a single trial call through at a time.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// Breaker trips open after a run of consecutive failures. After the cooldown
// it turns half-open and probes the remote with one call at a time; enough
// consecutive probe successes close it, any probe failure reopens it.
// Calls cancelled by their caller are not counted either way.
type Breaker struct {
	name      string
	failures  int
	successes int
	cooldown  time.Duration
	now       func() time.Time
	onChange  func(name string, to State)

	mu       sync.Mutex
	state    State
	streak   int
	probing  bool
	openedAt time.Time
}

type Option func(*Breaker)

// WithFailureThreshold sets the failure run that opens the breaker. Default 5.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failures = n
		}
	}
}

// WithSuccessThreshold sets the probe successes needed to close. Default 2.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successes = n
		}
	}
}

// WithCooldown sets how long the breaker stays open. Default 30s.
func WithCooldown(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.cooldown = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Breaker) {
		if now != nil {
			b.now = now
		}
	}
}

// WithStateChange registers fn to run after every transition. fn is called
// without the breaker lock held.
func WithStateChange(fn func(name string, to State)) Option {
	return func(b *Breaker) { b.onChange = fn }
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:      name,
		failures:  5,
		successes: 2,
		cooldown:  30 * time.Second,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

// State reports the current state. An open breaker whose cooldown has passed
// still reports open until the next call probes it.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Execute runs fn when the breaker admits the call and records its outcome.
func (b *Breaker) Execute(fn func() error) error {
	probe, err := b.admit()
	if err != nil {
		return err
	}
	err = fn()
	b.settle(probe, err)
	return err
}

func (b *Breaker) admit() (probe bool, err error) {
	b.mu.Lock()
	var changed bool
	defer func() {
		b.mu.Unlock()
		if changed {
			b.notify(StateHalfOpen)
		}
	}()

	switch b.state {
	case StateClosed:
		return false, nil
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.cooldown {
			return false, ErrOpen
		}
		b.state, b.streak, changed = StateHalfOpen, 0, true
	}
	if b.probing {
		return false, ErrOpen
	}
	b.probing = true
	return true, nil
}

func (b *Breaker) settle(probe bool, err error) {
	b.mu.Lock()
	if probe {
		b.probing = false
	}
	if errors.Is(err, context.Canceled) {
		b.mu.Unlock()
		return
	}

	from := b.state
	switch {
	case err != nil && b.state == StateHalfOpen:
		b.trip()
	case err != nil:
		b.streak++
		if b.streak >= b.failures {
			b.trip()
		}
	case b.state == StateHalfOpen:
		b.streak++
		if b.streak >= b.successes {
			b.state, b.streak = StateClosed, 0
		}
	default:
		b.streak = 0
	}
	to := b.state
	b.mu.Unlock()

	if to != from {
		b.notify(to)
	}
}

func (b *Breaker) trip() {
	b.state, b.streak, b.openedAt = StateOpen, 0, b.now()
}

func (b *Breaker) notify(to State) {
	if b.onChange != nil {
		b.onChange(b.name, to)
	}
}

// Reset closes the breaker and clears its counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state, b.streak, b.probing = StateClosed, 0, false
}
