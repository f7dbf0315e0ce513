package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const redisDismissedKeyPrefix = "dismissed_notices:"

// RedisStore keeps each actor's dismissals in a Redis set.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed dismissal store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Dismiss(ctx context.Context, actorID, key string) error {
	if err := s.client.SAdd(ctx, dismissedKey(actorID), key).Err(); err != nil {
		return fmt.Errorf("dismiss notice: %w", err)
	}
	return nil
}

func (s *RedisStore) IsDismissed(ctx context.Context, actorID, key string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, dismissedKey(actorID), key).Result()
	if err != nil {
		return false, fmt.Errorf("check dismissed notice: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) ListDismissed(ctx context.Context, actorID string) ([]string, error) {
	keys, err := s.client.SMembers(ctx, dismissedKey(actorID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list dismissed notices: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func dismissedKey(actorID string) string {
	return redisDismissedKeyPrefix + actorID
}
