// SPDX-License-Identifier: MIT
package types

import "sync"

type (
	// SafeCounter is a thread-safe counter.
	SafeCounter struct {
		m   sync.Mutex
		val int
	}
)

// Inc increments the counter.
func (c *SafeCounter) Inc() { c.Add(1) }

// Add delta to the counter.
func (c *SafeCounter) Add(delta int) {
	c.m.Lock()
	defer c.m.Unlock()
	c.val += delta
}

// Value returns the current value of the counter.
func (c *SafeCounter) Value() int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.val
}
