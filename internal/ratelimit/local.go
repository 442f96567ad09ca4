package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// Quotas enforced by the local limiter. Compiled in, not configurable.
const (
	perMinuteLimit = 20
	perDayLimit    = 200

	minuteWindow = time.Minute
	dayWindow    = 24 * time.Hour
)

// Sentinel errors distinguishing which quota was exhausted. Callers branch
// with errors.Is instead of parsing message text.
var (
	ErrMinuteLimitExceeded = errors.New("rate limit exceeded: too many requests per minute")
	ErrDailyLimitExceeded  = errors.New("rate limit exceeded: daily limit reached")
)

// entry is the state of one identifier within one window.
type entry struct {
	count   int
	resetAt time.Time
}

// Remaining reports how many requests an identifier has left in each window.
type Remaining struct {
	Minute int
	Day    int
}

// LocalLimiter enforces two simultaneous per-identifier quotas (20/minute,
// 200/day) entirely in process memory. State is keyed by identifier plus
// window label, reset lazily when first observed past its deadline, and
// swept from the map as a side effect of every Check call.
//
// A single instance is shared for the lifetime of the process; separate
// processes never share counts and nothing survives a restart. All mutation
// is serialized by an internal mutex.
type LocalLimiter struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewLocalLimiter creates an empty local limiter.
func NewLocalLimiter() *LocalLimiter {
	return &LocalLimiter{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Check permits or denies one request for the identifier. An empty
// identifier is treated as "default".
//
// The minute quota is evaluated strictly before the day quota: if both would
// fail, only ErrMinuteLimitExceeded is returned and the day entry is neither
// read nor touched. A failed check mutates nothing; both counters are
// incremented only when both checks pass.
func (l *LocalLimiter) Check(identifier string) error {
	if identifier == "" {
		identifier = "default"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	// Global lazy sweep: any single call evicts every expired entry,
	// whichever identifier it belongs to. Cheap only while the map stays
	// small, which holds for a per-client keyed calculator endpoint.
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}

	minuteKey := identifier + ":minute"

	minute := l.windowEntry(minuteKey, now, minuteWindow)
	if minute.count >= perMinuteLimit {
		return ErrMinuteLimitExceeded
	}

	dayKey := identifier + ":day"

	day := l.windowEntry(dayKey, now, dayWindow)
	if day.count >= perDayLimit {
		return ErrDailyLimitExceeded
	}

	minute.count++
	day.count++
	l.entries[minuteKey] = minute
	l.entries[dayKey] = day

	return nil
}

// windowEntry returns the current entry for key, implicitly reset if its
// deadline has passed or it does not exist yet.
func (l *LocalLimiter) windowEntry(key string, now time.Time, window time.Duration) entry {
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		return entry{count: 0, resetAt: now.Add(window)}
	}

	return e
}

// Remaining reports max(0, limit-count) per window for the identifier
// without mutating state or sweeping expired entries. Counts may be briefly
// stale until the next Check triggers cleanup; callers accept that.
func (l *LocalLimiter) Remaining(identifier string) Remaining {
	if identifier == "" {
		identifier = "default"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return Remaining{
		Minute: remainingFor(l.entries[identifier+":minute"], perMinuteLimit),
		Day:    remainingFor(l.entries[identifier+":day"], perDayLimit),
	}
}

func remainingFor(e entry, limit int) int {
	if remaining := limit - e.count; remaining > 0 {
		return remaining
	}

	return 0
}
