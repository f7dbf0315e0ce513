// Package store records which admin notices each actor has dismissed.
package store

import (
	"context"
	"sort"
	"sync"
)

// Error Contract:
// All store methods follow this error pattern:
// - Dismissing an already dismissed notice is not an error
// - Return wrapped errors with context for infrastructure failures

// InMemoryStore keeps dismissals in memory; used in tests and single-node setups.
type InMemoryStore struct {
	mu        sync.RWMutex
	dismissed map[string]map[string]struct{}
}

// NewInMemory constructs an empty in-memory dismissal store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{dismissed: make(map[string]map[string]struct{})}
}

func (s *InMemoryStore) Dismiss(_ context.Context, actorID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.dismissed[actorID]
	if !ok {
		keys = make(map[string]struct{})
		s.dismissed[actorID] = keys
	}
	keys[key] = struct{}{}
	return nil
}

func (s *InMemoryStore) IsDismissed(_ context.Context, actorID, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dismissed[actorID][key]
	return ok, nil
}

// ListDismissed returns the actor's dismissed keys sorted.
func (s *InMemoryStore) ListDismissed(_ context.Context, actorID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.dismissed[actorID]))
	for k := range s.dismissed[actorID] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
