// Package cache provides the Redis-backed idempotency store used to
// deduplicate order placement requests.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	idempotencyKeyPrefix = "order:idem:"
	idempotencyKeyTTL    = 24 * time.Hour
)

// IdempotencyStore records idempotency keys so a retried order placement is
// recognised as a duplicate.
type IdempotencyStore interface {
	// Reserve claims a key. It returns false when the key was already claimed.
	Reserve(ctx context.Context, key string) (bool, error)

	// Release frees a key so a retry after a failed placement is not locked out.
	Release(ctx context.Context, key string) error
}

// redisStore implements IdempotencyStore on Redis SETNX with a TTL.
type redisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed idempotency store.
func NewRedisStore(client *redis.Client, logger zerolog.Logger) IdempotencyStore {
	return &redisStore{
		client: client,
		logger: logger.With().Str("component", "idempotency").Logger(),
	}
}

func (s *redisStore) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to reserve idempotency key")
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}

	if !ok {
		s.logger.Debug().Msg("idempotency key already reserved")
	}

	return ok, nil
}

func (s *redisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		s.logger.Error().Err(err).Msg("failed to release idempotency key")
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
