package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eventsapi/internal/domain"
)

const redisKeyPrefix = "eventsapi:token:"

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and returns a TokenStore backed by keys with a TTL,
// so tokens survive restarts and are shared between instances.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (domain.TokenStore, func() error, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStoreFromClient(client), client.Close, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) domain.TokenStore {
	return &redisStore{client: client}
}

func (s *redisStore) Save(ctx context.Context, tokenID, accountID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, redisKeyPrefix+tokenID, accountID, ttl).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *redisStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.client.Get(ctx, redisKeyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup token: %w", err)
	}
	return true, nil
}

// Revoke relies on DEL being atomic: only one caller gets a count of 1. Expired keys
// are already gone, so the count also covers expiry.
func (s *redisStore) Revoke(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Del(ctx, redisKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("revoke token: %w", err)
	}
	return n > 0, nil
}
