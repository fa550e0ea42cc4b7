package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket guarding calls to rate-limited upstream
// APIs. One instance is shared per provider, not per request.
type RateLimiter struct {
	mu          sync.Mutex
	tokens      int
	capacity    int
	refillEvery time.Duration
	lastRefill  time.Time
}

// NewRateLimiter allows capacity calls immediately, then one more per
// refillEvery.
func NewRateLimiter(capacity int, refillEvery time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:      capacity,
		capacity:    capacity,
		refillEvery: refillEvery,
		lastRefill:  time.Now(),
	}
}

// Wait blocks until a token is available or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		r.refillLocked()
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.refillEvery):
		}
	}
}

func (r *RateLimiter) refillLocked() {
	elapsed := time.Since(r.lastRefill)
	earned := int(elapsed / r.refillEvery)
	if earned <= 0 {
		return
	}
	r.tokens += earned
	if r.tokens > r.capacity {
		r.tokens = r.capacity
	}
	r.lastRefill = r.lastRefill.Add(time.Duration(earned) * r.refillEvery)
}
