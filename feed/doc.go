// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package feed is the client-side engine of the gallery: cursor pagination,
scroll-driven loading, one-vote-per-browser voting, submissions and the
moderation toggle.

# Feed and Cursor

A Feed holds the loaded entries, newest first, and a Cursor with the
timestamp of the oldest loaded entry:

	f := feed.New(backend)
	n, err := f.LoadNextPage(ctx)

Each call queries one page of visible entries strictly older than the
cursor. An empty page marks the cursor exhausted and later calls do
nothing. A call made while another is in flight is ignored. Reset returns
to the first page; Close drops results still in flight.

# Scroll Trigger

	t := feed.NewTrigger(f)
	t.Follow()
	t.Visibility(ctx, lastID, true)

Only the last rendered entry is observed, and only its entry into view
fires a load.

# Voting

	v := feed.NewVoter(f, ledger, backend)
	err := v.Vote(ctx, id)

The VoteLedger makes repeat votes a no-op. Counts are applied to the feed
only after the store accepted the update.

# Submissions

	s := feed.NewSubmitter(f, backend, backend)
	entry, err := s.Submit(ctx, &draft)

Validation failures are *ValidationError and happen before any upload.

# Moderation

	m := feed.NewModerator(adminBackend)
	err := m.SetHidden(ctx, id, true)

# Capabilities

Querier, Inserter, Updater and AssetStore are implemented by store.SQLStore
(direct database access) and client.Client (HTTP).

# Errors

QueryError, InsertError, UpdateError and UploadError wrap the cause and are
recoverable by retrying. Message turns any of them into text for the user.
*/
package feed
