// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/quickly-gallery/models"
)

// Moderator toggles entry visibility. The updater it is given must sit
// behind the admin session; hidden entries drop out of every later page
// query but stay in feeds that already loaded them.
type Moderator struct {
	updater Updater

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

func NewModerator(u Updater) *Moderator {
	return &Moderator{updater: u}
}

func (m *Moderator) SetHidden(ctx context.Context, id int64, hidden bool) error {
	if err := m.updater.UpdateEntry(ctx, id, models.HiddenPatch(hidden)); err != nil {
		return &UpdateError{EntryID: id, Err: err}
	}
	m.logger().Info("entry visibility changed", "entry_id", id, "hidden", hidden)
	return nil
}

func (m *Moderator) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}
