// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"errors"
	"fmt"
)

var (
	ErrEntryNotLoaded = errors.New("entry is not in the loaded feed")
	ErrClosed         = errors.New("feed is closed")
)

// ValidationError rejects a submission before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// QueryError wraps a failed page fetch.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("could not load entries: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// InsertError wraps a failed entry insert.
type InsertError struct {
	Err error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("could not save entry: %v", e.Err)
}

func (e *InsertError) Unwrap() error { return e.Err }

// UpdateError wraps a failed counter or hidden-flag update.
type UpdateError struct {
	EntryID int64
	Err     error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("could not update entry %d: %v", e.EntryID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// UploadError wraps a failed asset upload.
type UploadError struct {
	Name string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("could not upload %s: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// LedgerError is returned when a vote reached the store but the ledger
// could not be persisted. The in-memory ledger still records the vote.
type LedgerError struct {
	EntryID int64
	Err     error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("vote for entry %d recorded but not saved locally: %v", e.EntryID, e.Err)
}

func (e *LedgerError) Unwrap() error { return e.Err }

// Message returns the single human-readable message for err that a caller
// should surface to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return "Could not load entries. Please try again."
	}
	var ie *InsertError
	if errors.As(err, &ie) {
		return "Could not save your submission. Please try again."
	}
	var ue *UploadError
	if errors.As(err, &ue) {
		return "Could not upload your file. Please try again."
	}
	var le *LedgerError
	if errors.As(err, &le) {
		return "Your vote was counted but could not be remembered on this device."
	}
	var upe *UpdateError
	if errors.As(err, &upe) {
		return "Could not save the change. Please try again."
	}
	if errors.Is(err, ErrEntryNotLoaded) {
		return "That entry is no longer loaded. Refresh and try again."
	}
	return "Something went wrong. Please try again."
}
