package translation

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"hanmal/backend/internal/logger"
)

// DefaultRateLimit is the default QPS cap for outbound provider calls.
const DefaultRateLimit = 5

// RateLimiter caps outbound translation-backend calls process-wide, so one
// chatty request cannot burn through a provider quota.
type RateLimiter struct {
	limiter *rate.Limiter
	mu      sync.RWMutex
}

// NewRateLimiter creates a rate limiter with the given QPS.
func NewRateLimiter(qps int) *RateLimiter {
	if qps <= 0 {
		qps = DefaultRateLimit
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(qps), qps), // burst = qps
	}
}

// Wait blocks until a token is available or the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.RLock()
	limiter := r.limiter
	r.mu.RUnlock()
	return limiter.Wait(ctx)
}

// SetLimit updates the rate limit.
func (r *RateLimiter) SetLimit(qps int) {
	if qps <= 0 {
		qps = DefaultRateLimit
	}
	r.mu.Lock()
	r.limiter.SetLimit(rate.Limit(qps))
	r.limiter.SetBurst(qps)
	r.mu.Unlock()
	logger.Info("provider rate limit updated",
		"module", "translation", "action", "update", "resource", "ratelimit", "result", "ok",
		"qps", qps)
}
