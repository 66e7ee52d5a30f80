// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets a random X-Request-ID header. Logs request start (method,
path, remote) and completion (status, duration_ms) under that id.

# Admin Gate

Admin routes require a valid session cookie:

	mux.HandleFunc("GET /admin/entries",
		middleware.WithLogging(middleware.RequireAdmin(sessions, h.ListAll)))

Requests without one get 401 and never reach the handler.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Reflects the request origin with credentials allowed, so the admin cookie
works from a separate frontend. Allows the methods the API serves (GET,
POST, PATCH) with a Content-Type header, and exposes X-Request-ID.
Preflight requests are answered with 204.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateEntryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for the salted IP hash logged with each submission.
*/
package middleware
