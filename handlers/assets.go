// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/danielhkuo/quickly-gallery/assets"
	"github.com/danielhkuo/quickly-gallery/feed"
	"github.com/danielhkuo/quickly-gallery/middleware"
	"github.com/danielhkuo/quickly-gallery/models"
)

// multipart framing allowance on top of the file limit
const formOverhead = 1 << 20

type AssetHandler struct {
	files *assets.FileStore
}

func NewAssetHandler(files *assets.FileStore) *AssetHandler {
	return &AssetHandler{files: files}
}

// Upload handles POST /assets (multipart field "file", optional "name")
func (h *AssetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if max := h.files.MaxSize(); max > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, max+formOverhead)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	if name == "" {
		name = feed.AssetName(header.Filename)
	}

	ref, err := h.files.PutAsset(r.Context(), name, file)
	switch {
	case errors.Is(err, assets.ErrInvalidName):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid asset name")
		return
	case errors.Is(err, assets.ErrExists):
		middleware.ErrorResponse(w, http.StatusConflict, "Asset already exists")
		return
	case errors.Is(err, assets.ErrTooLarge):
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	case err != nil:
		slog.Error("failed to store asset", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store asset")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.UploadAssetResponse{Reference: ref})
}

// Serve handles GET /assets/{name}
func (h *AssetHandler) Serve(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.files.Open)
}

// Thumbnail handles GET /assets/thumbs/{name}
func (h *AssetHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/jpeg")
	h.serve(w, r, h.files.OpenThumbnail)
}

func (h *AssetHandler) serve(w http.ResponseWriter, r *http.Request, open func(string) (*os.File, error)) {
	name := r.PathValue("name")

	f, err := open(name)
	switch {
	case errors.Is(err, assets.ErrNotFound), errors.Is(err, assets.ErrInvalidName):
		middleware.ErrorResponse(w, http.StatusNotFound, "Asset not found")
		return
	case err != nil:
		slog.Error("failed to open asset", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read asset")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		slog.Error("failed to stat asset", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read asset")
		return
	}

	http.ServeContent(w, r, name, info.ModTime(), f)
}
