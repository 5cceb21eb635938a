package memory

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a sliding-window counter kept in process memory. It serves
// single-instance deployments and tests; multi-instance runtimes use the Redis
// limiter so all replicas share one budget.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	nowFn  func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// Allow records the call and reports whether it fits the rolling window.
func (l *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	cutoff := now.Add(-l.window)

	kept := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.hits[key] = kept
		return false, nil
	}
	l.hits[key] = append(kept, now)
	return true, nil
}
