package testutil

import (
	"sync"
	"time"
)

// FixedClock is a settable calendar clock for tests. Now always returns the
// configured instant until AddDays moves it.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock returns a clock at midday of the given local date
// (YYYY-MM-DD). It panics on a malformed date.
func NewFixedClock(date string) *FixedClock {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		panic("testutil: bad clock date " + date)
	}
	return &FixedClock{now: d.Add(12 * time.Hour)}
}

// Now returns the current instant of the clock.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AddDays moves the clock by n calendar days.
func (c *FixedClock) AddDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}
