// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the HTTP transport for the feed engine.

	c, err := client.New("https://gallery.example.com", nil)
	f := feed.New(c)
	voter := feed.NewVoter(f, votes, c)
	submitter := feed.NewSubmitter(f, c, c)

Non-2xx responses are returned as *APIError carrying the status and the
server's error message. The feed engine wraps them in its own error types,
so errors.As reaches both.

Moderation needs a session first:

	if _, err := c.Login(ctx, password); err != nil { ... }
	err = feed.NewModerator(c).SetHidden(ctx, id, true)
*/
package client
