// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides moderator authentication and token generation utilities.

# Admin Password

The moderator password is configured either as a bcrypt hash or as a plain
password hashed at start-up (golang.org/x/crypto/bcrypt):

	creds, err := auth.NewCredentials(cfg.AdminPassword, cfg.AdminPasswordHash)
	err = creds.Check(attempt) // ErrInvalidPassword on mismatch

When both are set the hash wins.

# Admin Sessions

A successful login issues an HS256 JWT (github.com/golang-jwt/jwt/v5) with
issuer "quickly-gallery", subject "admin" and an expiry:

	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	token, exp, err := sessions.Issue()
	http.SetCookie(w, auth.SessionCookie(token, exp))

The token travels in the gallery_admin cookie (HttpOnly, SameSite=Lax, Path=/).
FromRequest verifies the cookie; every failure is reported as ErrInvalidSession.

# ID Generation

Random hex IDs for request correlation:

	id, err := auth.GenerateID(8)  // 16 hex characters

# IP Hashing

Submissions are logged with a salted IP hash instead of the address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
