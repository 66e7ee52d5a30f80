// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Store is a durable key-value mapping in its JSON-serializable form:
// entry id (decimal string) to "already voted".
type Store interface {
	Load() (map[string]bool, error)
	Save(m map[string]bool) error
}

// Ledger is the append-only set of entries voted on from this browser.
type Ledger struct {
	mu    sync.Mutex
	store Store
	voted map[int64]bool
}

// Open loads the ledger from store. Keys that are not entry ids and false
// values are skipped.
func Open(store Store) (*Ledger, error) {
	m, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	voted := make(map[int64]bool, len(m))
	for k, v := range m {
		if !v {
			continue
		}
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		voted[id] = true
	}

	return &Ledger{store: store, voted: voted}, nil
}

func (l *Ledger) HasVoted(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.voted[id]
}

// MarkVoted records id and persists the whole ledger. The in-memory record
// is kept even if persisting fails, so a ledger never forgets a vote.
func (l *Ledger) MarkVoted(id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.voted[id] = true

	m := make(map[string]bool, len(l.voted))
	for k := range l.voted {
		m[strconv.FormatInt(k, 10)] = true
	}
	if err := l.store.Save(m); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

// Voted returns the recorded ids in ascending order.
func (l *Ledger) Voted() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]int64, 0, len(l.voted))
	for id := range l.voted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
