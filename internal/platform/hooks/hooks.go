// Package hooks is the in-process event bus admin components subscribe to,
// the way plugins attach callbacks to host actions.
package hooks

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

// DefaultPriority is used by On when no priority is given. Lower runs first.
const DefaultPriority = 10

// Handler receives the payload dispatched for an event.
type Handler func(ctx context.Context, payload any)

// Bus is the callable-registration capability subscribers depend on.
type Bus interface {
	Subscribe(event string, priority int, fn Handler)
	Dispatch(ctx context.Context, event string, payload any)
}

// Topic binds an event name to its payload type.
type Topic[T any] struct {
	Name string
}

// NewTopic declares a typed event.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{Name: name}
}

// On subscribes fn to topic at DefaultPriority.
func On[T any](b Bus, topic Topic[T], fn func(ctx context.Context, payload T)) {
	OnPriority(b, topic, DefaultPriority, fn)
}

// OnPriority subscribes fn to topic at the given priority. Payloads of another
// type dispatched under the same name are ignored.
func OnPriority[T any](b Bus, topic Topic[T], priority int, fn func(ctx context.Context, payload T)) {
	b.Subscribe(topic.Name, priority, func(ctx context.Context, payload any) {
		if p, ok := payload.(T); ok {
			fn(ctx, p)
		}
	})
}

// Emit dispatches payload to every subscriber of topic.
func Emit[T any](ctx context.Context, b Bus, topic Topic[T], payload T) {
	b.Dispatch(ctx, topic.Name, payload)
}

type subscription struct {
	priority int
	seq      int
	fn       Handler
}

// InProcess is a synchronous Bus. Subscribers run in priority order, then in
// registration order; a panicking subscriber is logged and skipped.
type InProcess struct {
	logger *slog.Logger

	mu   sync.RWMutex
	seq  int
	subs map[string][]subscription
}

// New creates an empty in-process bus.
func New(logger *slog.Logger) *InProcess {
	return &InProcess{
		logger: logger,
		subs:   make(map[string][]subscription),
	}
}

// Subscribe implements Bus.
func (b *InProcess) Subscribe(event string, priority int, fn Handler) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	list := append(b.subs[event], subscription{priority: priority, seq: b.seq, fn: fn})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority < list[j].priority
		}
		return list[i].seq < list[j].seq
	})
	b.subs[event] = list
}

// Dispatch implements Bus.
func (b *InProcess) Dispatch(ctx context.Context, event string, payload any) {
	b.mu.RLock()
	list := append([]subscription(nil), b.subs[event]...)
	b.mu.RUnlock()

	for _, s := range list {
		b.invoke(ctx, event, s.fn, payload)
	}
}

// Count returns the number of subscribers for event.
func (b *InProcess) Count(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[event])
}

func (b *InProcess) invoke(ctx context.Context, event string, fn Handler, payload any) {
	defer func() {
		if r := recover(); r != nil && b.logger != nil {
			b.logger.ErrorContext(ctx, "hook subscriber panicked",
				"event", event,
				"panic", r,
			)
		}
	}()
	fn(ctx, payload)
}
