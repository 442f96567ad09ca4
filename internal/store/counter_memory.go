package store

import (
	"context"
	"sync"
	"time"
)

// counter holds one in-memory count with its expiry deadline.
type counter struct {
	count     int64
	expiresAt time.Time
	hasExpiry bool
}

// MemoryCounterStore is an in-memory implementation of ratelimit.CounterStore.
// Counters expire lazily: an elapsed counter is discarded the next time it is
// observed rather than by a background sweep.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]counter
}

// NewMemoryCounterStore creates a new in-memory counter store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		counters: make(map[string]counter),
	}
}

func (s *MemoryCounterStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || (c.hasExpiry && time.Now().After(c.expiresAt)) {
		c = counter{}
	}

	c.count++
	s.counters[key] = c

	return c.count, nil
}

func (s *MemoryCounterStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok {
		return nil
	}

	c.expiresAt = time.Now().Add(ttl)
	c.hasExpiry = true
	s.counters[key] = c

	return nil
}

func (s *MemoryCounterStore) TTL(_ context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || !c.hasExpiry {
		return 0, nil
	}

	ttl := time.Until(c.expiresAt)
	if ttl < 0 {
		return 0, nil
	}

	return ttl, nil
}
