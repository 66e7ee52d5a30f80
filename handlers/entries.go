// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-gallery/assets"
	"github.com/danielhkuo/quickly-gallery/auth"
	"github.com/danielhkuo/quickly-gallery/cliparse"
	"github.com/danielhkuo/quickly-gallery/feed"
	"github.com/danielhkuo/quickly-gallery/middleware"
	"github.com/danielhkuo/quickly-gallery/models"
	"github.com/danielhkuo/quickly-gallery/store"
)

type EntryHandler struct {
	entries EntryStore
	cfg     cliparse.Config
}

func NewEntryHandler(entries EntryStore, cfg cliparse.Config) *EntryHandler {
	return &EntryHandler{entries: entries, cfg: cfg}
}

// ListEntries handles GET /entries
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	limit, before, err := parsePage(r, h.cfg.PageSize)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.entries.QueryEntries(r.Context(), feed.Query{Limit: limit, OlderThan: before})
	if err != nil {
		slog.Error("failed to query entries", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListEntriesResponse{Entries: entries})
}

// GetEntry handles GET /entries/{id}
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.entries.GetEntry(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && entry.Hidden) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		slog.Error("failed to get entry", "entry_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entry)
}

// CreateEntry handles POST /entries
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEntryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	draft, msg := normalizeDraft(req)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	entry, err := h.entries.InsertEntry(r.Context(), draft)
	if err != nil {
		slog.Error("failed to insert entry", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create entry")
		return
	}

	slog.Info("entry created",
		"entry_id", entry.ID,
		"asset", entry.AssetKind(),
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSecret),
	)

	middleware.JSONResponse(w, http.StatusCreated, entry)
}

// normalizeDraft trims the request and enforces exactly one asset.
// A file entry must reference an uploaded asset; a video entry carries
// the "empty" image marker.
func normalizeDraft(req models.CreateEntryRequest) (models.EntryDraft, string) {
	d := models.EntryDraft{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Contact:     strings.TrimSpace(req.Contact),
		Author:      strings.TrimSpace(req.Author),
		ImagePath:   strings.TrimSpace(req.ImagePath),
		VideoURL:    strings.TrimSpace(req.VideoURL),
	}

	if field := d.MissingField(); field != "" {
		return d, field + " is required"
	}

	hasFile := d.ImagePath != "" && d.ImagePath != models.ImagePathEmpty
	hasVideo := d.VideoURL != ""
	switch {
	case hasFile && hasVideo:
		return d, "provide image_path or video_url, not both"
	case !hasFile && !hasVideo:
		return d, "image_path or video_url is required"
	case hasVideo:
		d.ImagePath = models.ImagePathEmpty
	default:
		if _, ok := assets.ParseReference(d.ImagePath); !ok {
			return d, "image_path must reference an uploaded asset"
		}
	}

	return d, ""
}

// UpdateCounts handles PATCH /entries/{id}/counts
func (h *EntryHandler) UpdateCounts(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateCountsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Hidden entries are not public, so their counts are not either
	entry, err := h.entries.GetEntry(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && entry.Hidden) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		slog.Error("failed to get entry", "entry_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	err = h.entries.UpdateEntry(r.Context(), id, models.CountsPatch(req.Stars, req.Votes))
	switch {
	case errors.Is(err, store.ErrInvalidPatch):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Entry not found")
		return
	case err != nil:
		slog.Error("failed to update counts", "entry_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}

	slog.Info("counts updated", "entry_id", id, "votes", req.Votes)
	w.WriteHeader(http.StatusNoContent)
}
