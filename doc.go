// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Gallery API server.

Quickly Gallery is a public image and video gallery. Visitors scroll an
infinite feed of submissions, star the ones they like (once per browser),
and submit their own. A moderator can hide entries from the public feed.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=gallery.db ADMIN_PASSWORD=... SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." -t postgres -assets ./uploads

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_PASSWORD or ADMIN_PASSWORD_HASH: Moderator credential
  - SESSION_SECRET (-session-secret): Admin session signing key

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ASSET_DIR (-assets): Upload directory (default: ./uploads)
  - MAX_UPLOAD (-max-upload): Upload limit (default: 10MB)
  - SESSION_TTL: Admin session lifetime (default: 12h)
  - PAGE_SIZE: Default page size for listings (default: 5)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (entries, assets, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin gate, JSON helpers
  - store: SQL persistence of entries
  - assets: Uploaded files and thumbnails
  - models: Domain and request/response types
  - auth: Admin password and session tokens
  - db: Connection and schema creation
  - cliparse: Configuration parsing

The browser-side engine lives in feed (pagination, scroll trigger, voting,
submission, moderation), with ledger for the per-browser vote record and
client for the HTTP transport it runs over.

See package documentation for each component.
*/
package main
