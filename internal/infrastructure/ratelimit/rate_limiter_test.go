package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter() (*RateLimiter, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter()
	rl.now = c.now
	return rl, c
}

func TestAllowBurstThenBlock(t *testing.T) {
	rl, _ := newTestLimiter()

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow("10.0.0.1", ActionSubmitReview)
		assert.True(t, ok, "attempt %d", i+1)
	}

	ok, wait := rl.Allow("10.0.0.1", ActionSubmitReview)
	assert.False(t, ok)
	assert.Equal(t, 10*time.Minute, wait)
}

func TestAllowRefills(t *testing.T) {
	rl, c := newTestLimiter()
	rl.SetPolicy("order", Policy{Burst: 1, Every: time.Minute})

	ok, _ := rl.Allow("a", "order")
	assert.True(t, ok)
	ok, _ = rl.Allow("a", "order")
	assert.False(t, ok)

	c.advance(59 * time.Second)
	ok, wait := rl.Allow("a", "order")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	c.advance(time.Second)
	ok, _ = rl.Allow("a", "order")
	assert.True(t, ok)
}

func TestClientsAndActionsAreIndependent(t *testing.T) {
	rl, _ := newTestLimiter()
	rl.SetPolicy("order", Policy{Burst: 1, Every: time.Hour})

	ok, _ := rl.Allow("a", "order")
	assert.True(t, ok)
	ok, _ = rl.Allow("b", "order")
	assert.True(t, ok)
	ok, _ = rl.Allow("a", ActionLogin)
	assert.True(t, ok)
}

func TestCleanup(t *testing.T) {
	rl, c := newTestLimiter()
	rl.Allow("a", ActionLogin)
	c.advance(30 * time.Minute)
	rl.Allow("b", ActionLogin)
	c.advance(31 * time.Minute)

	rl.Cleanup(time.Hour)
	assert.Equal(t, 1, rl.size())
}
