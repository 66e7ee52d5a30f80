// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import "time"

// Cursor tracks the pagination position of a feed.
// The zero value is the initial state (nothing loaded, not exhausted).
type Cursor struct {
	OldestLoaded *time.Time
	Exhausted    bool
}

// Reset returns the cursor to its initial state.
func (c *Cursor) Reset() {
	c.OldestLoaded = nil
	c.Exhausted = false
}

// Advance moves the cursor to the oldest timestamp of the page just appended.
func (c *Cursor) Advance(oldest time.Time) {
	t := oldest
	c.OldestLoaded = &t
}

// Exhaust marks that no entries older than the cursor exist.
func (c *Cursor) Exhaust() {
	c.Exhausted = true
}

// Next builds the query for the page after the cursor.
func (c Cursor) Next(pageSize int) Query {
	q := Query{Hidden: false, Limit: pageSize}
	if c.OldestLoaded != nil {
		t := *c.OldestLoaded
		q.OlderThan = &t
	}
	return q
}
