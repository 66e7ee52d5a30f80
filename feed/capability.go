// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"io"
	"time"

	"github.com/danielhkuo/quickly-gallery/models"
)

// DefaultPageSize is the number of entries fetched per page.
const DefaultPageSize = 5

// Query describes one page request against the backing store.
// Results are always ordered by created_at descending.
type Query struct {
	Hidden    bool
	Limit     int
	OlderThan *time.Time // strictly earlier than, when set
}

type Querier interface {
	QueryEntries(ctx context.Context, q Query) ([]models.Entry, error)
}

// Inserter persists a draft and assigns its id and created_at.
type Inserter interface {
	InsertEntry(ctx context.Context, d models.EntryDraft) (models.Entry, error)
}

// Updater applies a partial update to a single entry.
type Updater interface {
	UpdateEntry(ctx context.Context, id int64, p models.EntryPatch) error
}

// AssetStore stores a binary payload under a unique name and returns a
// retrievable reference.
type AssetStore interface {
	PutAsset(ctx context.Context, name string, body io.Reader) (string, error)
}

// VoteLedger records which entries this browser has voted on.
type VoteLedger interface {
	HasVoted(id int64) bool
	MarkVoted(id int64) error
}
