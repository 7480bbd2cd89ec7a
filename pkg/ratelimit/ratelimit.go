// Package ratelimit provides an in-memory token bucket limiter keyed by an
// arbitrary string, used to throttle expensive per-user operations.
package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a keyed token bucket limiter. Each key gets its own bucket
// of maxTokens, refilled at one token per refillRate. Idle buckets are
// dropped by a background sweep.
type TokenBucket struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	maxTokens  int
	refillRate time.Duration

	stopSweep chan struct{}
	sweepOnce sync.Once
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewTokenBucket creates a limiter allowing maxTokens burst per key with one
// token refilled every refillRate.
func NewTokenBucket(maxTokens int, refillRate time.Duration) *TokenBucket {
	tb := &TokenBucket{
		buckets:    make(map[string]*bucket),
		maxTokens:  maxTokens,
		refillRate: refillRate,
		stopSweep:  make(chan struct{}),
	}
	go tb.sweep()
	return tb
}

// Allow consumes one token for key if available.
func (tb *TokenBucket) Allow(key string) bool {
	return tb.allowAt(key, time.Now())
}

func (tb *TokenBucket) allowAt(key string, now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.maxTokens, lastRefill: now}
		tb.buckets[key] = b
	}

	refilled := int(now.Sub(b.lastRefill) / tb.refillRate)
	if refilled > 0 {
		b.tokens += refilled
		if b.tokens > tb.maxTokens {
			b.tokens = tb.maxTokens
		}
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// Close stops the background sweep.
func (tb *TokenBucket) Close() {
	tb.sweepOnce.Do(func() { close(tb.stopSweep) })
}

// sweep drops buckets that have been idle long enough to be full again.
func (tb *TokenBucket) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-tb.stopSweep:
			return
		case now := <-ticker.C:
			idle := time.Duration(tb.maxTokens) * tb.refillRate
			tb.mu.Lock()
			for key, b := range tb.buckets {
				if now.Sub(b.lastRefill) > idle {
					delete(tb.buckets, key)
				}
			}
			tb.mu.Unlock()
		}
	}
}
