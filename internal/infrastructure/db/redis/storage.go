package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freelancehub/session-gateway/internal/core/ports"
)

const keyPrefix = "storage:"

// StorageFactory hands out per-browser storage scopes, each backed by one
// Redis hash. Key format: storage:<session_id>
type StorageFactory struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStorageFactory wraps client. Every write pushes the scope's expiry
// out to ttl; ttl <= 0 keeps scopes forever.
func NewStorageFactory(client *redis.Client, ttl time.Duration) *StorageFactory {
	return &StorageFactory{client: client, ttl: ttl}
}

func (f *StorageFactory) For(sessionID string) ports.Storage {
	return &Storage{client: f.client, key: keyPrefix + sessionID, ttl: f.ttl}
}

// Storage implements ports.Storage over a single Redis hash.
type Storage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (s *Storage) Get(ctx context.Context, field string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage get %s: %w", field, err)
	}
	return v, true, nil
}

func (s *Storage) Set(ctx context.Context, field, value string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key, field, value)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage set %s: %w", field, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.key, fields...).Err(); err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	return nil
}
