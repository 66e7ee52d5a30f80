// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-gallery/models"
)

// Attachment is a file picked for upload.
type Attachment struct {
	Filename string
	Body     io.Reader
}

// Draft is the user's in-progress submission.
type Draft struct {
	Title       string
	Description string
	Contact     string
	Author      string
	File        *Attachment
	VideoURL    string
}

// Validate checks the draft without touching the network.
func (d *Draft) Validate() error {
	fields := models.EntryDraft{
		Title:       d.Title,
		Description: d.Description,
		Contact:     d.Contact,
		Author:      d.Author,
	}
	if field := fields.MissingField(); field != "" {
		return &ValidationError{Field: field, Message: "Please fill in the " + field + " field."}
	}

	hasFile := d.File != nil
	hasVideo := strings.TrimSpace(d.VideoURL) != ""
	switch {
	case hasFile && d.File.Body == nil:
		return &ValidationError{Field: "asset", Message: "The attached file could not be read."}
	case hasFile && hasVideo:
		return &ValidationError{Field: "asset", Message: "Attach a file or a video link, not both."}
	case !hasFile && !hasVideo:
		return &ValidationError{Field: "asset", Message: "Attach a file or a video link."}
	}
	return nil
}

// AssetName derives a unique storage name from a random token and the
// original file extension.
func AssetName(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}

// Submitter validates and persists new entries, then reloads the feed from
// the top so the new entry is shown first.
type Submitter struct {
	feed     *Feed
	assets   AssetStore
	inserter Inserter

	// Logger defaults to the feed's logger.
	Logger *slog.Logger

	// OnClose is called after a successful submission, to dismiss the
	// submission form.
	OnClose func()
}

func NewSubmitter(f *Feed, assets AssetStore, inserter Inserter) *Submitter {
	return &Submitter{feed: f, assets: assets, inserter: inserter}
}

func (s *Submitter) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return s.feed.logger
}

// Submit persists d. On success d is cleared, the feed is reset and its first
// page reloaded; a failure of that reload is returned as a *QueryError
// alongside the saved entry.
func (s *Submitter) Submit(ctx context.Context, d *Draft) (models.Entry, error) {
	if err := d.Validate(); err != nil {
		return models.Entry{}, err
	}

	draft := models.EntryDraft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Contact:     strings.TrimSpace(d.Contact),
		Author:      strings.TrimSpace(d.Author),
	}

	if d.File != nil {
		name := AssetName(d.File.Filename)
		ref, err := s.assets.PutAsset(ctx, name, d.File.Body)
		if err != nil {
			s.logger().Warn("asset upload failed", "name", name, "error", err)
			return models.Entry{}, &UploadError{Name: d.File.Filename, Err: err}
		}
		draft.ImagePath = ref
	} else {
		draft.ImagePath = models.ImagePathEmpty
		draft.VideoURL = strings.TrimSpace(d.VideoURL)
	}

	entry, err := s.inserter.InsertEntry(ctx, draft)
	if err != nil {
		// an uploaded asset is left in place
		s.logger().Warn("entry insert failed", "image_path", draft.ImagePath, "error", err)
		return models.Entry{}, &InsertError{Err: err}
	}

	s.logger().Info("entry submitted", "entry_id", entry.ID, "asset", entry.AssetKind())

	*d = Draft{}
	if s.OnClose != nil {
		s.OnClose()
	}

	s.feed.Reset()
	if _, err := s.feed.LoadNextPage(ctx); err != nil {
		return entry, err
	}
	return entry, nil
}
