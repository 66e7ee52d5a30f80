// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-gallery/models"
)

var errBackendDown = errors.New("backend unavailable")

// fakeBackend is an in-memory store implementing every capability.
type fakeBackend struct {
	mu      sync.Mutex
	entries []models.Entry
	nextID  int64
	clock   time.Time

	queries []Query
	inserts int
	updates int
	uploads map[string][]byte

	failQuery  error
	failInsert error
	failUpdate error
	failUpload error

	// when set, QueryEntries signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID:  1,
		clock:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		uploads: map[string][]byte{},
	}
}

// seed adds n visible entries, each one second newer than the last.
func (b *fakeBackend) seed(n int) []models.Entry {
	out := make([]models.Entry, 0, n)
	for i := 0; i < n; i++ {
		e, _ := b.InsertEntry(context.Background(), models.EntryDraft{
			Title:       fmt.Sprintf("Entry %d", i+1),
			Description: "prompt",
			Contact:     "a@example.com",
			Author:      "Alice",
			ImagePath:   "/assets/seed.png",
		})
		out = append(out, e)
	}
	b.mu.Lock()
	b.inserts = 0
	b.mu.Unlock()
	return out
}

func (b *fakeBackend) block() {
	b.started = make(chan struct{}, 1)
	b.release = make(chan struct{})
}

func (b *fakeBackend) QueryEntries(ctx context.Context, q Query) ([]models.Entry, error) {
	b.mu.Lock()
	b.queries = append(b.queries, q)
	started, release := b.started, b.release
	b.mu.Unlock()

	if started != nil {
		started <- struct{}{}
		<-release
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failQuery != nil {
		return nil, b.failQuery
	}

	var out []models.Entry
	for _, e := range b.entries {
		if e.Hidden != q.Hidden {
			continue
		}
		if q.OlderThan != nil && !e.CreatedAt.Before(*q.OlderThan) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (b *fakeBackend) InsertEntry(ctx context.Context, d models.EntryDraft) (models.Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.inserts++
	if b.failInsert != nil {
		return models.Entry{}, b.failInsert
	}

	b.clock = b.clock.Add(time.Second)
	e := models.Entry{
		ID:          b.nextID,
		Title:       d.Title,
		Description: d.Description,
		Contact:     d.Contact,
		Author:      d.Author,
		ImagePath:   d.ImagePath,
		VideoURL:    d.VideoURL,
		CreatedAt:   b.clock,
	}
	b.nextID++
	b.entries = append(b.entries, e)
	return e, nil
}

func (b *fakeBackend) UpdateEntry(ctx context.Context, id int64, p models.EntryPatch) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.updates++
	if b.failUpdate != nil {
		return b.failUpdate
	}
	for i := range b.entries {
		if b.entries[i].ID != id {
			continue
		}
		if p.Stars != nil {
			b.entries[i].Stars = *p.Stars
		}
		if p.Votes != nil {
			b.entries[i].Votes = *p.Votes
		}
		if p.Hidden != nil {
			b.entries[i].Hidden = *p.Hidden
		}
		return nil
	}
	return fmt.Errorf("entry %d not found", id)
}

func (b *fakeBackend) PutAsset(ctx context.Context, name string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failUpload != nil {
		return "", b.failUpload
	}
	b.uploads[name] = data
	return "/assets/" + name, nil
}

func (b *fakeBackend) stored(id int64) models.Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.entries {
		if e.ID == id {
			return e
		}
	}
	return models.Entry{}
}

func (b *fakeBackend) queryCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queries)
}

func (b *fakeBackend) setFailQuery(err error) {
	b.mu.Lock()
	b.failQuery = err
	b.mu.Unlock()
}
