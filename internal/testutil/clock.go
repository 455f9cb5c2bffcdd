package testutil

import (
	"sync"
	"time"
)

// FixedClock is a settable wall clock for tests.
//
// It satisfies task.Clock. Now always returns the configured instant until
// Set or Advance changes it.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at now.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// NewFixedClockMillis creates a clock frozen at the given epoch milliseconds.
func NewFixedClockMillis(ms int64) *FixedClock {
	return &FixedClock{now: time.UnixMilli(ms).UTC()}
}

// Now returns the frozen instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d and returns the new instant.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
