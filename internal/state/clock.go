package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// siteID identifies this process in exported documents.
var siteID = uuid.NewString()

// SiteID returns the identifier of this drawing session.
func SiteID() string { return siteID }

// Clock is a Lamport counter.
type Clock struct {
	counter atomic.Uint64
}

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	return c.counter.Add(1)
}

// Update advances the clock to at least ts.
func (c *Clock) Update(ts uint64) {
	for {
		cur := c.counter.Load()
		if ts <= cur || c.counter.CompareAndSwap(cur, ts) {
			return
		}
	}
}

// Now returns the current value without advancing.
func (c *Clock) Now() uint64 { return c.counter.Load() }
