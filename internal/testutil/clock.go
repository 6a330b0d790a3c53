package testutil

import (
	"context"
	"sync"
	"time"
)

// FakeClock records requested sleeps and returns immediately.
// It satisfies the simulation's Clock interface.
type FakeClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
	// CancelAfter, if positive, makes the Nth sleep (1-based) return the context error
	// after invoking Cancel, simulating an interrupt arriving mid-run.
	CancelAfter int
	Cancel      context.CancelFunc
}

// Sleep records d and honours an already-cancelled context
func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	n := len(c.sleeps)
	c.mu.Unlock()

	if c.CancelAfter > 0 && n == c.CancelAfter && c.Cancel != nil {
		c.Cancel()
	}
	return ctx.Err()
}

// Sleeps returns a copy of every duration requested so far
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}
