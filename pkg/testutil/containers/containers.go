//go:build integration

// Package containers starts the backing services used by integration tests.
// Each service is started once per test binary and shared by every suite in
// it; Ryuk removes the containers when the process exits.
package containers

import (
	"sync"
	"testing"
)

// Manager hands out the shared containers.
type Manager struct {
	postgres shared[PostgresContainer]
	redis    shared[RedisContainer]
	kafka    shared[KafkaContainer]
}

var manager = sync.OnceValue(func() *Manager { return &Manager{} })

// GetManager returns the process-wide Manager.
func GetManager() *Manager { return manager() }

func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	return m.postgres.get(t, NewPostgresContainer)
}

func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	return m.redis.get(t, NewRedisContainer)
}

func (m *Manager) GetKafka(t *testing.T) *KafkaContainer {
	return m.kafka.get(t, NewKafkaContainer)
}

// shared starts a container on first use. A failed start is retried by the
// next caller since start aborts the test that triggered it.
type shared[T any] struct {
	mu sync.Mutex
	c  *T
}

func (s *shared[T]) get(t *testing.T, start func(*testing.T) *T) *T {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		s.c = start(t)
	}
	return s.c
}
