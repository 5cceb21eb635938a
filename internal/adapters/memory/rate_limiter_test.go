package memory

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterEnforcesLimit(t *testing.T) {
	t.Parallel()
	limiter := NewRateLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "k1")
		if err != nil || !allowed {
			t.Fatalf("call %d: allowed=%v err=%v", i+1, allowed, err)
		}
	}
	allowed, err := limiter.Allow(ctx, "k1")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if allowed {
		t.Fatal("call above the limit must be denied")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	t.Parallel()
	limiter := NewRateLimiter(1, time.Minute)
	ctx := context.Background()

	if allowed, _ := limiter.Allow(ctx, "k1"); !allowed {
		t.Fatal("first call on k1 must pass")
	}
	if allowed, _ := limiter.Allow(ctx, "k2"); !allowed {
		t.Fatal("k2 has its own budget")
	}
	if allowed, _ := limiter.Allow(ctx, "k1"); allowed {
		t.Fatal("second call on k1 must be denied")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	t.Parallel()
	limiter := NewRateLimiter(2, time.Minute)

	current := time.Unix(1_700_000_000, 0).UTC()
	limiter.nowFn = func() time.Time { return current }
	ctx := context.Background()

	limiter.Allow(ctx, "k1")
	limiter.Allow(ctx, "k1")
	if allowed, _ := limiter.Allow(ctx, "k1"); allowed {
		t.Fatal("budget exhausted, call must be denied")
	}

	// Past the window the old hits fall off.
	current = current.Add(61 * time.Second)
	if allowed, _ := limiter.Allow(ctx, "k1"); !allowed {
		t.Fatal("hits outside the window must not count")
	}
}
