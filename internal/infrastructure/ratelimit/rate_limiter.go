package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	ActionSubmitReview = "submit_review"
	ActionLogin        = "login"
)

// Policy is a bucket shape: Burst tokens, one token back every Every.
type Policy struct {
	Burst int
	Every time.Duration
}

var defaultPolicies = map[string]Policy{
	// 3 reviews, then one every 10 minutes
	ActionSubmitReview: {Burst: 3, Every: 10 * time.Minute},
	// 5 attempts, then one every 30 seconds
	ActionLogin: {Burst: 5, Every: 30 * time.Second},
}

var fallbackPolicy = Policy{Burst: 20, Every: 3 * time.Second}

type bucket struct {
	tokens   int
	policy   Policy
	refilled time.Time
	lastSeen time.Time
}

func (b *bucket) take(now time.Time) (bool, time.Duration) {
	if steps := int(now.Sub(b.refilled) / b.policy.Every); steps > 0 {
		b.tokens += steps
		if b.tokens > b.policy.Burst {
			b.tokens = b.policy.Burst
		}
		b.refilled = b.refilled.Add(time.Duration(steps) * b.policy.Every)
	}
	b.lastSeen = now

	if b.tokens > 0 {
		b.tokens--
		return true, 0
	}
	return false, b.refilled.Add(b.policy.Every).Sub(now)
}

// RateLimiter keeps one token bucket per client and action.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	policies map[string]Policy
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	policies := make(map[string]Policy, len(defaultPolicies))
	for action, p := range defaultPolicies {
		policies[action] = p
	}
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		policies: policies,
		now:      time.Now,
	}
}

// SetPolicy overrides the bucket shape for an action. Existing buckets keep theirs.
func (rl *RateLimiter) SetPolicy(action string, p Policy) {
	rl.mu.Lock()
	rl.policies[action] = p
	rl.mu.Unlock()
}

// Allow consumes a token for client+action, or reports how long to wait.
func (rl *RateLimiter) Allow(client, action string) (bool, time.Duration) {
	key := client + ":" + action
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		p, known := rl.policies[action]
		if !known {
			p = fallbackPolicy
		}
		b = &bucket{tokens: p.Burst, policy: p, refilled: now}
		rl.buckets[key] = b
	}
	return b.take(now)
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}
