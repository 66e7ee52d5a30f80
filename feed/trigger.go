// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"sync"

	"github.com/danielhkuo/quickly-gallery/models"
)

// Pager is the part of Feed the scroll trigger drives.
type Pager interface {
	LoadNextPage(ctx context.Context) (int, error)
	Loading() bool
	Exhausted() bool
	Last() (models.Entry, bool)
}

// Trigger loads the next page when the last rendered entry scrolls into
// view. It watches a single target at a time and fires on the
// not-visible to visible edge only.
type Trigger struct {
	mu       sync.Mutex
	pager    Pager
	target   int64
	attached bool
	visible  bool
}

func NewTrigger(p Pager) *Trigger {
	return &Trigger{pager: p}
}

// Observe makes id the only observed target, tearing down any previous
// observation. Re-observing the current target keeps its visibility state.
func (t *Trigger) Observe(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.attached && t.target == id {
		return
	}
	t.target = id
	t.attached = true
	t.visible = false
}

// Follow retargets the trigger to the pager's current last entry, or
// disconnects it when nothing is loaded.
func (t *Trigger) Follow() {
	last, ok := t.pager.Last()
	if !ok {
		t.Disconnect()
		return
	}
	t.Observe(last.ID)
}

// Disconnect stops observing.
func (t *Trigger) Disconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.attached = false
	t.visible = false
}

// Target returns the observed entry id, if any.
func (t *Trigger) Target() (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target, t.attached
}

// Visibility reports a viewport change for entry id. It returns whether a
// page load was fired. After a load that appended entries the trigger
// follows the new last entry.
func (t *Trigger) Visibility(ctx context.Context, id int64, visible bool) (bool, error) {
	t.mu.Lock()
	if !t.attached || id != t.target {
		t.mu.Unlock()
		return false, nil
	}
	entered := visible && !t.visible
	t.visible = visible
	t.mu.Unlock()

	if !entered {
		return false, nil
	}
	if t.pager.Loading() || t.pager.Exhausted() {
		return false, nil
	}

	n, err := t.pager.LoadNextPage(ctx)
	if err != nil {
		// allow the next entry into view to retry
		t.mu.Lock()
		if t.attached && t.target == id {
			t.visible = false
		}
		t.mu.Unlock()
		return true, err
	}
	if n > 0 {
		t.Follow()
	}
	return true, nil
}
