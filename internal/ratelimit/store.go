package ratelimit

import (
	"context"
	"time"
)

// CounterStore is the atomic counter service backing the fixed-window limiter.
// Implementations must guarantee that Incr is atomic across concurrent
// callers; the limiter itself holds no lock.
type CounterStore interface {
	// Incr atomically increments the counter at key and returns the
	// post-increment value. A missing counter is created at 1.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets the counter's time-to-live. The limiter calls this once per
	// window cycle, on the increment that created the counter.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// TTL returns the remaining time until the counter at key expires.
	TTL(ctx context.Context, key string) (time.Duration, error)
}
