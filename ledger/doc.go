// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger records which entries have been voted on from this browser.

	l, err := ledger.Open(ledger.NewFileStore("votes.json"))
	if l.HasVoted(id) { ... }
	err = l.MarkVoted(id)

The ledger is keyed by entry id only and never forgets an id. It is
persisted through a Store holding the JSON form {"<id>": true}; FileStore
writes it atomically to disk and MemoryStore keeps it in memory.

*Ledger satisfies feed.VoteLedger, so a different backing (for example a
per-account ledger on the server) can be swapped in without touching the
voting logic.
*/
package ledger
