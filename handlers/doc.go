// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Gallery API.

# Handler Types

Each handler is a struct with its dependencies:

  - EntryHandler: Public feed pages, single entries, submission, vote counts
  - AssetHandler: Uploads and serving of files and thumbnails
  - AdminHandler: Moderator login and hiding entries

Handlers are created via constructor functions. Entry persistence is behind
the EntryStore interface, implemented by store.SQLStore:

	entryHandler := handlers.NewEntryHandler(store.NewSQLStore(db), cfg)

# Feed Pages

	GET /entries?limit=5&before=2025-01-01T12:00:04Z

Entries come newest first, strictly older than before when it is given, and
never include hidden ones. before is the created_at of the last entry of
the previous page in RFC 3339 format.

# Submission

	POST /assets  → {"reference": "/assets/<uuid>.png"}
	POST /entries → Entry

An entry needs all four text fields and exactly one asset: an image_path, or
a video_url (stored with image_path "empty").

# Voting

	PATCH /entries/{id}/counts {"stars": 4, "votes": 4}

The body overwrites both counters. stars must equal votes. Concurrent voters
can lose updates; the browser ledger, not the server, enforces one vote per
entry.

# Moderation

	POST  /admin/login               → gallery_admin cookie
	PATCH /admin/entries/{id}/hidden {"hidden": true}

Admin routes are wrapped with middleware.RequireAdmin by the router.
*/
package handlers
