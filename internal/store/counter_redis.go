package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore is a Redis implementation of ratelimit.CounterStore.
// Redis owns the counter state entirely: counters are created on first
// increment, expire on their own after the configured interval, and are
// recreated by the next increment after expiry.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore creates a Redis-backed atomic counter store.
func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

func (s *RedisCounterStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Expire(ctx, key, ttl).Err()
}

func (s *RedisCounterStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.client.TTL(ctx, key).Result()
}
