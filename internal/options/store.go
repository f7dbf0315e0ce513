// Package options persists named plugin settings (license key, license status)
// the way the host platform's options table does.
package options

import (
	"context"
	"sync"

	"bkap/internal/sentinel"
)

// Store reads and writes options.
//
// Error Contract:
//   - Get returns sentinel.ErrNotFound when the option does not exist
//   - Delete of a missing option is not an error
//   - Infrastructure failures are returned wrapped
type Store interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

// InMemoryStore keeps options in a map; used in tests and when no database is configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	options map[string]string
}

// NewInMemory constructs an in-memory store seeded with initial values.
func NewInMemory(initial map[string]string) *InMemoryStore {
	s := &InMemoryStore{options: make(map[string]string, len(initial))}
	for k, v := range initial {
		s.options[k] = v
	}
	return s
}

func (s *InMemoryStore) Get(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.options[name]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return v, nil
}

func (s *InMemoryStore) Set(_ context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[name] = value
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.options, name)
	return nil
}
