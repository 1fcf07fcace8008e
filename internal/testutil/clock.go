package testutil

import (
	"sync"
	"time"
)

// FixedClock is a manually advanced clock for tests.
//
// It satisfies suggest.Clock. The same FixedClock always reports the same
// instant until Advance or Set is called.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at t (converted to UTC).
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t.UTC()}
}

// Now returns the frozen instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new instant.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

// DaysAgo returns the instant n days before the clock's current time.
func (c *FixedClock) DaysAgo(n int) time.Time {
	return c.Now().AddDate(0, 0, -n)
}

// DaysAhead returns the instant n days after the clock's current time.
func (c *FixedClock) DaysAhead(n int) time.Time {
	return c.Now().AddDate(0, 0, n)
}
