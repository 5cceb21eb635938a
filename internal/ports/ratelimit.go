package ports

import "context"

// RateLimiter bounds request rate per caller key. Allow reports whether the
// call fits the budget; exhaustion is a throttling signal, not an error.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
