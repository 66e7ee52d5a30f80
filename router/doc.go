// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Gallery API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux, err := router.NewRouter(db, cfg)

It fails when the asset directory cannot be created or no admin credential
is configured.

# Endpoints

Health:

	GET /health

Feed and voting (public):

	GET   /entries?limit=&before= - Page of visible entries, newest first
	GET   /entries/{id}           - One visible entry
	POST  /entries                - Create entry
	PATCH /entries/{id}/counts    - Overwrite stars and votes

Assets (public):

	POST /assets               - Upload (multipart "file")
	GET  /assets/{name}        - Stored file
	GET  /assets/thumbs/{name} - 300px JPEG thumbnail

Moderation (session cookie required, except login and logout):

	POST  /admin/login              - Start admin session
	POST  /admin/logout             - Clear session cookie
	GET   /admin/entries            - Page of all entries, hidden included
	PATCH /admin/entries/{id}/hidden - Hide or show an entry

# Handler Initialization

The router builds the SQL store, asset store and admin session issuer from
the config and injects them:

	entryHandler := handlers.NewEntryHandler(entries, cfg)
	assetHandler := handlers.NewAssetHandler(files)
	adminHandler := handlers.NewAdminHandler(entries, creds, sessions, cfg)
*/
package router
