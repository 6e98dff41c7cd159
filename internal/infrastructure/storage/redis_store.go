package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vcm-medical/vcmclient/domain"
)

// RedisStore implements domain.SessionStore on Redis, for shared-host
// deployments (kiosk terminals, multi-process agents) where a local
// file is not durable enough. Same single-writer contract as FileStore.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store namespaced by prefix.
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    namespace + ":session",
	}
}

// Load implements domain.SessionStore.
func (s *RedisStore) Load(ctx context.Context) (*domain.Session, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var record storedSession
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, domain.ErrSessionCorrupt
	}

	return &domain.Session{User: record.User, Token: record.Token}, nil
}

// Save implements domain.SessionStore. No TTL: token expiry is enforced
// by the backend and checked again on restore.
func (s *RedisStore) Save(ctx context.Context, session *domain.Session) error {
	record := storedSession{
		User:            session.User,
		Token:           session.Token,
		IsAuthenticated: session.IsAuthenticated(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

// Clear implements domain.SessionStore.
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*RedisStore)(nil)
