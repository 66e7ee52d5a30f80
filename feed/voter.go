// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/quickly-gallery/models"
)

// Board is the in-memory entry set a Voter reads counts from and writes
// optimistic counts back to. *Feed implements it.
type Board interface {
	Entry(id int64) (models.Entry, bool)
	SetCounts(id int64, stars, votes int) bool
}

// Voter applies at most one vote per entry per ledger.
//
// The increment is computed from the counts the board currently holds, so
// concurrent votes from other browsers can overwrite each other. Votes for
// the same entry racing inside one process before the first ledger write
// completes can both reach the store.
type Voter struct {
	board   Board
	ledger  VoteLedger
	updater Updater

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

func NewVoter(board Board, ledger VoteLedger, updater Updater) *Voter {
	return &Voter{board: board, ledger: ledger, updater: updater}
}

func (v *Voter) logger() *slog.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return slog.Default()
}

// Vote adds one star and one vote to the entry. Voting again on an entry the
// ledger already records is a no-op.
func (v *Voter) Vote(ctx context.Context, id int64) error {
	if v.ledger.HasVoted(id) {
		return nil
	}

	e, ok := v.board.Entry(id)
	if !ok {
		return ErrEntryNotLoaded
	}

	stars, votes := e.Stars+1, e.Votes+1
	if err := v.updater.UpdateEntry(ctx, id, models.CountsPatch(stars, votes)); err != nil {
		v.logger().Warn("failed to apply vote", "entry_id", id, "error", err)
		return &UpdateError{EntryID: id, Err: err}
	}

	v.board.SetCounts(id, stars, votes)

	if err := v.ledger.MarkVoted(id); err != nil {
		v.logger().Error("failed to persist vote ledger", "entry_id", id, "error", err)
		return &LedgerError{EntryID: id, Err: err}
	}

	v.logger().Info("vote applied", "entry_id", id, "stars", stars)
	return nil
}

// HasVoted reports whether the ledger records a vote for id.
func (v *Voter) HasVoted(id int64) bool {
	return v.ledger.HasVoted(id)
}
