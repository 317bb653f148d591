package infra

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token-bucket limiter: maxTokens requests per
// refill window.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
}

// NewRateLimiter allows maxTokens requests per refillRate window.
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or the context is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		rl.mu.Lock()
		rl.refill()
		if rl.tokens > 0 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}
		rl.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// refill adds tokens for elapsed whole windows. Caller holds mu.
func (rl *RateLimiter) refill() {
	elapsed := time.Since(rl.lastRefill)
	if elapsed < rl.refillRate {
		return
	}
	periods := int(elapsed / rl.refillRate)
	rl.tokens += periods
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = rl.lastRefill.Add(time.Duration(periods) * rl.refillRate)
}
