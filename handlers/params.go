// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/quickly-gallery/feed"
	"github.com/danielhkuo/quickly-gallery/models"
)

// EntryStore is the persistence surface the handlers need
type EntryStore interface {
	feed.Querier
	feed.Inserter
	feed.Updater
	GetEntry(ctx context.Context, id int64) (models.Entry, error)
	ListAll(ctx context.Context, before *time.Time, limit int) ([]models.Entry, error)
}

var (
	errBadID     = errors.New("id must be a positive integer")
	errBadLimit  = errors.New("limit must be a positive integer")
	errBadBefore = errors.New("before must be an RFC 3339 timestamp")
)

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// parsePage reads ?limit= and ?before= for paginated listings
func parsePage(r *http.Request, defaultLimit int) (int, *time.Time, error) {
	limit := defaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return 0, nil, errBadLimit
		}
		limit = n
	}

	var before *time.Time
	if s := r.URL.Query().Get("before"); s != "" {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return 0, nil, errBadBefore
		}
		before = &t
	}

	return limit, before, nil
}
