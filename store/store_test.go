// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-gallery/feed"
	"github.com/danielhkuo/quickly-gallery/models"
	"github.com/danielhkuo/quickly-gallery/testutil"
)

func draft(title string) models.EntryDraft {
	return models.EntryDraft{
		Title:       title,
		Description: "desc",
		Contact:     "me@example.com",
		Author:      "me",
		ImagePath:   "/assets/" + title + ".png",
	}
}

func TestQueryEntriesPages(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := NewSQLStore(conn)
	ctx := context.Background()
	ids := testutil.SeedEntries(t, conn, 7)

	first, err := s.QueryEntries(ctx, feed.Query{Limit: 5})
	if err != nil {
		t.Fatalf("QueryEntries() error = %v", err)
	}
	if len(first) != 5 {
		t.Fatalf("first page has %d entries, want 5", len(first))
	}
	for i, e := range first {
		if want := ids[len(ids)-1-i]; e.ID != want {
			t.Errorf("first[%d].ID = %d, want %d", i, e.ID, want)
		}
	}

	older := first[len(first)-1].CreatedAt
	second, err := s.QueryEntries(ctx, feed.Query{Limit: 5, OlderThan: &older})
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 2 || second[0].ID != ids[1] || second[1].ID != ids[0] {
		t.Fatalf("unexpected second page: %+v", second)
	}

	older = second[1].CreatedAt
	third, err := s.QueryEntries(ctx, feed.Query{Limit: 5, OlderThan: &older})
	if err != nil {
		t.Fatal(err)
	}
	if len(third) != 0 {
		t.Errorf("expected empty page, got %d entries", len(third))
	}
}

func TestQueryEntriesHiddenFlag(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := NewSQLStore(conn)
	ctx := context.Background()

	visible := testutil.CreateTestEntry(t, conn, testutil.TestEntry{Title: "visible"})
	hidden := testutil.CreateTestEntry(t, conn, testutil.TestEntry{Title: "hidden", Hidden: true,
		CreatedAt: time.Now().Add(time.Second)})

	got, err := s.QueryEntries(ctx, feed.Query{Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != visible {
		t.Errorf("public page = %+v, want only %d", got, visible)
	}

	got, _ = s.QueryEntries(ctx, feed.Query{Hidden: true, Limit: 5})
	if len(got) != 1 || got[0].ID != hidden || !got[0].Hidden {
		t.Errorf("hidden page = %+v, want only %d", got, hidden)
	}

	all, err := s.ListAll(ctx, nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != hidden {
		t.Errorf("ListAll() = %+v, want both newest first", all)
	}
}

func TestQueryEntriesLimits(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := NewSQLStore(conn)
	testutil.SeedEntries(t, conn, 7)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, feed.DefaultPageSize},
		{"negative", -3, feed.DefaultPageSize},
		{"explicit", 2, 2},
		{"more than stored", 50, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.QueryEntries(context.Background(), feed.Query{Limit: tt.limit})
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestInsertEntry(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := NewSQLStore(conn)
	ctx := context.Background()

	e, err := s.InsertEntry(ctx, draft("first"))
	if err != nil {
		t.Fatalf("InsertEntry() error = %v", err)
	}
	if e.ID == 0 || e.Stars != 0 || e.Votes != 0 || e.Hidden {
		t.Errorf("unexpected inserted entry: %+v", e)
	}

	got, err := s.GetEntry(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if got.Title != "first" || got.ImagePath != "/assets/first.png" || !got.CreatedAt.Equal(e.CreatedAt) {
		t.Errorf("stored entry = %+v, inserted = %+v", got, e)
	}
}

func TestInsertEntryMonotonic(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := NewSQLStore(conn)
	ctx := context.Background()

	// A clock that never moves forces the +1µs path
	frozen := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return frozen }

	var last time.Time
	for i := 0; i < 5; i++ {
		e, err := s.InsertEntry(ctx, draft("same-instant"))
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		if !e.CreatedAt.After(last) {
			t.Errorf("insert %d created_at %v not after %v", i, e.CreatedAt, last)
		}
		last = e.CreatedAt
	}

	// An entry already stored in the future still comes before new ones
	future := frozen.Add(time.Hour)
	testutil.CreateTestEntry(t, conn, testutil.TestEntry{Title: "future", CreatedAt: future})
	e, err := s.InsertEntry(ctx, draft("after-future"))
	if err != nil {
		t.Fatal(err)
	}
	if !e.CreatedAt.After(future) {
		t.Errorf("created_at %v should follow %v", e.CreatedAt, future)
	}
}

func TestInsertEntryConcurrent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := NewSQLStore(conn)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.InsertEntry(ctx, draft("concurrent")); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent insert failed: %v", err)
	}

	all, _ := s.ListAll(ctx, nil, 100)
	if len(all) != n {
		t.Fatalf("stored %d entries, want %d", len(all), n)
	}
	for i := 1; i < len(all); i++ {
		if !all[i].CreatedAt.Before(all[i-1].CreatedAt) {
			t.Errorf("timestamps not strictly ordered at %d", i)
		}
	}
}

func TestUpdateEntry(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := NewSQLStore(conn)
	ctx := context.Background()
	id := testutil.CreateTestEntry(t, conn, testutil.TestEntry{Title: "target", Votes: 2})

	if err := s.UpdateEntry(ctx, id, models.CountsPatch(3, 3)); err != nil {
		t.Fatalf("UpdateEntry(counts) error = %v", err)
	}
	if err := s.UpdateEntry(ctx, id, models.HiddenPatch(true)); err != nil {
		t.Fatalf("UpdateEntry(hidden) error = %v", err)
	}

	got, _ := s.GetEntry(ctx, id)
	if got.Stars != 3 || got.Votes != 3 || !got.Hidden {
		t.Errorf("after updates: %+v", got)
	}

	// Hiding does not touch counts and vice versa
	if err := s.UpdateEntry(ctx, id, models.HiddenPatch(false)); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetEntry(ctx, id)
	if got.Stars != 3 || got.Hidden {
		t.Errorf("after unhide: %+v", got)
	}
}

func TestUpdateEntryInvalid(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := NewSQLStore(conn)
	id := testutil.CreateTestEntry(t, conn, testutil.TestEntry{Title: "target"})
	two := 2

	tests := []struct {
		name  string
		patch models.EntryPatch
	}{
		{"empty", models.EntryPatch{}},
		{"stars only", models.EntryPatch{Stars: &two}},
		{"votes only", models.EntryPatch{Votes: &two}},
		{"unequal", models.CountsPatch(2, 3)},
		{"negative", models.CountsPatch(-1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.UpdateEntry(context.Background(), id, tt.patch)
			if !errors.Is(err, ErrInvalidPatch) {
				t.Errorf("UpdateEntry() error = %v, want ErrInvalidPatch", err)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := NewSQLStore(conn)
	ctx := context.Background()

	if _, err := s.GetEntry(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEntry() error = %v, want ErrNotFound", err)
	}
	if err := s.UpdateEntry(ctx, 404, models.CountsPatch(1, 1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateEntry() error = %v, want ErrNotFound", err)
	}
}

func TestFeedOverStore(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := NewSQLStore(conn)
	ctx := context.Background()
	testutil.SeedEntries(t, conn, 12)

	f := feed.New(s)
	for !f.Exhausted() {
		if _, err := f.LoadNextPage(ctx); err != nil {
			t.Fatalf("LoadNextPage() error = %v", err)
		}
	}

	entries := f.Entries()
	if len(entries) != 12 {
		t.Fatalf("feed loaded %d entries, want 12", len(entries))
	}
	seen := make(map[int64]bool)
	for i, e := range entries {
		if seen[e.ID] {
			t.Errorf("duplicate entry %d", e.ID)
		}
		seen[e.ID] = true
		if i > 0 && !e.CreatedAt.Before(entries[i-1].CreatedAt) {
			t.Errorf("feed not ordered newest first at %d", i)
		}
	}
}
