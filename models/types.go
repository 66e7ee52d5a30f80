// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strings"
	"time"
)

// ImagePathEmpty marks a video-backed entry. An entry with this image path
// carries its asset in VideoURL instead.
const ImagePathEmpty = "empty"

// Asset kinds
const (
	AssetNone  = "none"
	AssetFile  = "file"
	AssetVideo = "video"
)

// Domain types

type Entry struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Contact     string    `json:"contact"`
	Author      string    `json:"author"`
	ImagePath   string    `json:"image_path,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	Stars       int       `json:"stars"`
	Votes       int       `json:"votes"`
	Hidden      bool      `json:"hidden"`
	CreatedAt   time.Time `json:"created_at"`
}

// AssetKind reports which of the asset references the entry carries.
func (e Entry) AssetKind() string {
	switch {
	case e.ImagePath == ImagePathEmpty && e.VideoURL != "":
		return AssetVideo
	case e.ImagePath != "" && e.ImagePath != ImagePathEmpty:
		return AssetFile
	}
	return AssetNone
}

// EntryDraft is a fully-formed entry before the store assigns id and timestamp.
type EntryDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	Author      string `json:"author"`
	ImagePath   string `json:"image_path"`
	VideoURL    string `json:"video_url,omitempty"`
}

// MissingField returns the JSON name of the first blank required text field,
// or "" when all are present.
func (d EntryDraft) MissingField() string {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return "title"
	case strings.TrimSpace(d.Description) == "":
		return "description"
	case strings.TrimSpace(d.Contact) == "":
		return "contact"
	case strings.TrimSpace(d.Author) == "":
		return "author"
	}
	return ""
}

// EntryPatch is a partial update. Nil fields are left untouched.
type EntryPatch struct {
	Stars  *int  `json:"stars,omitempty"`
	Votes  *int  `json:"votes,omitempty"`
	Hidden *bool `json:"hidden,omitempty"`
}

// CountsPatch builds a patch that sets both counters.
func CountsPatch(stars, votes int) EntryPatch {
	return EntryPatch{Stars: &stars, Votes: &votes}
}

// HiddenPatch builds a patch that only sets the hidden flag.
func HiddenPatch(hidden bool) EntryPatch {
	return EntryPatch{Hidden: &hidden}
}

// Empty reports whether the patch changes nothing.
func (p EntryPatch) Empty() bool {
	return p.Stars == nil && p.Votes == nil && p.Hidden == nil
}

// Request types

type CreateEntryRequest = EntryDraft

type UpdateCountsRequest struct {
	Stars int `json:"stars"`
	Votes int `json:"votes"`
}

type SetHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

// Response types

type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

type UploadAssetResponse struct {
	Reference string `json:"reference"`
}

type LoginResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
