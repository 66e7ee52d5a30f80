// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-gallery/auth"
	"github.com/danielhkuo/quickly-gallery/cliparse"
	"github.com/danielhkuo/quickly-gallery/middleware"
	"github.com/danielhkuo/quickly-gallery/models"
	"github.com/danielhkuo/quickly-gallery/store"
)

type AdminHandler struct {
	entries  EntryStore
	creds    auth.Credentials
	sessions *auth.Sessions
	cfg      cliparse.Config
}

func NewAdminHandler(entries EntryStore, creds auth.Credentials, sessions *auth.Sessions, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{entries: entries, creds: creds, sessions: sessions, cfg: cfg}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.creds.Check(req.Password); err != nil {
		slog.Warn("admin login failed", "ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSecret))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, exp, err := h.sessions.Issue()
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, exp))
	slog.Info("admin logged in", "expires_at", exp)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{ExpiresAt: exp})
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearCookie())
	w.WriteHeader(http.StatusNoContent)
}

// ListAll handles GET /admin/entries (includes hidden entries)
func (h *AdminHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit, before, err := parsePage(r, h.cfg.PageSize)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.entries.ListAll(r.Context(), before, limit)
	if err != nil {
		slog.Error("failed to list entries", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListEntriesResponse{Entries: entries})
}

// SetHidden handles PATCH /admin/entries/{id}/hidden
func (h *AdminHandler) SetHidden(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.SetHiddenRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err = h.entries.UpdateEntry(r.Context(), id, models.HiddenPatch(req.Hidden))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		slog.Error("failed to set hidden", "entry_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}

	slog.Info("entry moderated", "entry_id", id, "hidden", req.Hidden)
	w.WriteHeader(http.StatusNoContent)
}
