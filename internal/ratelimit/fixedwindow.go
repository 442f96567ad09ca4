package ratelimit

import (
	"context"
	"net/http"
	"time"
)

// keyPrefix namespaces limiter counters in the shared counter store.
const keyPrefix = "rate-limit:"

// Config holds the per-call parameters of a fixed window.
type Config struct {
	// Interval is the length of the window. The quota resets at interval
	// boundaries rather than sliding continuously.
	Interval time.Duration
	// Limit is the number of requests permitted per window.
	Limit int64
}

// Rejection describes a denied request. It carries everything the HTTP layer
// needs to form a 429 response with a Retry-After header.
type Rejection struct {
	Status     int
	RetryAfter time.Duration
}

// FixedWindowLimiter bounds request frequency using an external atomic
// counter with a fixed expiry window. It is safe for multi-instance
// deployments: concurrent callers sharing an identifier are serialized by the
// store's atomic increment, not by any local lock.
type FixedWindowLimiter struct {
	store CounterStore
}

// NewFixedWindowLimiter creates a limiter backed by the given counter store.
func NewFixedWindowLimiter(store CounterStore) *FixedWindowLimiter {
	return &FixedWindowLimiter{store: store}
}

// Check decides whether the caller identified by identifier may proceed.
// It returns nil when the request is allowed, or a Rejection with the
// counter's remaining TTL when the window quota is exhausted.
//
// The expiry is set only on the increment that created the counter (count ==
// 1) and never refreshed afterwards, which is what makes the window fixed
// rather than rolling. Store errors propagate to the caller untouched; the
// store is assumed to fail rarely and masking its failures is not this
// component's job.
func (l *FixedWindowLimiter) Check(ctx context.Context, identifier string, cfg Config) (*Rejection, error) {
	key := keyPrefix + identifier

	count, err := l.store.Incr(ctx, key)
	if err != nil {
		return nil, err
	}

	if count == 1 {
		// A crash between Incr and Expire leaves a counter that never
		// resets. Accepted: the exposure is one store round-trip on the
		// first request of each window.
		if err := l.store.Expire(ctx, key, cfg.Interval); err != nil {
			return nil, err
		}
	}

	if count > cfg.Limit {
		ttl, err := l.store.TTL(ctx, key)
		if err != nil {
			return nil, err
		}

		return &Rejection{
			Status:     http.StatusTooManyRequests,
			RetryAfter: ttl,
		}, nil
	}

	return nil, nil
}
