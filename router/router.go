// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/danielhkuo/quickly-gallery/assets"
	"github.com/danielhkuo/quickly-gallery/auth"
	"github.com/danielhkuo/quickly-gallery/cliparse"
	"github.com/danielhkuo/quickly-gallery/handlers"
	"github.com/danielhkuo/quickly-gallery/middleware"
	"github.com/danielhkuo/quickly-gallery/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	files, err := assets.NewFileStore(cfg.AssetDir, cfg.MaxUpload)
	if err != nil {
		return nil, err
	}
	creds, err := auth.NewCredentials(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("admin credentials: %w", err)
	}
	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	entries := store.NewSQLStore(db)

	// Initialize handlers
	entryHandler := handlers.NewEntryHandler(entries, cfg)
	assetHandler := handlers.NewAssetHandler(files)
	adminHandler := handlers.NewAdminHandler(entries, creds, sessions, cfg)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(sessions, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Feed and voting (public)
	mux.HandleFunc("GET /entries", middleware.WithLogging(entryHandler.ListEntries))
	mux.HandleFunc("GET /entries/{id}", middleware.WithLogging(entryHandler.GetEntry))
	mux.HandleFunc("POST /entries", middleware.WithLogging(entryHandler.CreateEntry))
	mux.HandleFunc("PATCH /entries/{id}/counts", middleware.WithLogging(entryHandler.UpdateCounts))

	// Assets (public)
	mux.HandleFunc("POST /assets", middleware.WithLogging(assetHandler.Upload))
	mux.HandleFunc("GET /assets/{name}", middleware.WithLogging(assetHandler.Serve))
	mux.HandleFunc("GET /assets/thumbs/{name}", middleware.WithLogging(assetHandler.Thumbnail))

	// Moderation
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("POST /admin/logout", middleware.WithLogging(adminHandler.Logout))
	mux.HandleFunc("GET /admin/entries", admin(adminHandler.ListAll))
	mux.HandleFunc("PATCH /admin/entries/{id}/hidden", admin(adminHandler.SetHidden))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-gallery API v1"))
	})

	return mux, nil
}
