// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/danielhkuo/quickly-gallery/models"
)

// Feed is the in-memory, cursor-paginated list of visible entries.
// All state changes happen under mu; queries run outside it.
type Feed struct {
	mu       sync.Mutex
	source   Querier
	pageSize int
	logger   *slog.Logger

	entries []models.Entry
	cursor  Cursor
	loading bool
	gen     uint64 // bumped by Reset and Close to invalidate in-flight loads
	closed  bool
}

type Option func(*Feed)

// WithPageSize overrides DefaultPageSize. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(f *Feed) {
		if n > 0 {
			f.pageSize = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

func New(source Querier, opts ...Option) *Feed {
	f := &Feed{
		source:   source,
		pageSize: DefaultPageSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Snapshot is a copy of the feed state for rendering.
type Snapshot struct {
	Entries []models.Entry
	Cursor  Cursor
	Loading bool
}

// LoadNextPage fetches the page after the cursor and appends it.
// It returns the number of entries appended. Calls made while a load is in
// flight or after the cursor is exhausted are ignored and return (0, nil).
func (f *Feed) LoadNextPage(ctx context.Context) (int, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return 0, ErrClosed
	}
	if f.loading || f.cursor.Exhausted {
		f.mu.Unlock()
		return 0, nil
	}
	f.loading = true
	gen := f.gen
	q := f.cursor.Next(f.pageSize)
	f.mu.Unlock()

	page, err := f.source.QueryEntries(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || gen != f.gen {
		f.logger.Debug("discarding stale page", "entries", len(page), "error", err)
		return 0, nil
	}
	f.loading = false

	if err != nil {
		f.logger.Warn("failed to load page", "error", err, "older_than", q.OlderThan)
		return 0, &QueryError{Err: err}
	}

	if len(page) == 0 {
		f.cursor.Exhaust()
		f.logger.Debug("feed exhausted", "entries", len(f.entries))
		return 0, nil
	}

	f.entries = append(f.entries, page...)
	f.cursor.Advance(page[len(page)-1].CreatedAt)
	return len(page), nil
}

// Reset clears the feed and cursor. A load in flight at the time of the
// reset is discarded when it completes.
func (f *Feed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gen++
	f.entries = nil
	f.cursor.Reset()
	f.loading = false
}

// Close tears the feed down. Later loads fail with ErrClosed and results of
// loads still in flight are dropped.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gen++
	f.closed = true
	f.loading = false
}

func (f *Feed) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := make([]models.Entry, len(f.entries))
	copy(entries, f.entries)

	cur := Cursor{Exhausted: f.cursor.Exhausted}
	if f.cursor.OldestLoaded != nil {
		cur.Advance(*f.cursor.OldestLoaded)
	}

	return Snapshot{Entries: entries, Cursor: cur, Loading: f.loading}
}

func (f *Feed) Entries() []models.Entry {
	return f.Snapshot().Entries
}

func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *Feed) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor.Exhausted
}

func (f *Feed) PageSize() int {
	return f.pageSize
}

// Entry returns the loaded entry with the given id.
func (f *Feed) Entry(id int64) (models.Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.Entry{}, false
}

// Last returns the oldest loaded entry, which is the one rendered last.
func (f *Feed) Last() (models.Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.entries) == 0 {
		return models.Entry{}, false
	}
	return f.entries[len(f.entries)-1], true
}

// SetCounts overwrites the counters of a loaded entry. It reports whether
// the entry was found.
func (f *Feed) SetCounts(id int64, stars, votes int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Stars = stars
			f.entries[i].Votes = votes
			return true
		}
	}
	return false
}
