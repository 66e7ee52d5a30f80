// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the gallery.

# Domain Types

  - Entry: one gallery submission with its vote counters and hidden flag
  - EntryDraft: an entry before the store assigns id and created_at
  - EntryPatch: partial update (counters and/or hidden flag)

# Asset References

An entry carries exactly one of:

  - a stored file: ImagePath is the asset reference (e.g. /assets/abc.png)
  - an external video: ImagePath is ImagePathEmpty and VideoURL is set
  - nothing (legacy rows)

Entry.AssetKind reports which one as AssetFile, AssetVideo or AssetNone.

# Request Types

  - CreateEntryRequest: title, description, contact, author, image_path, video_url
  - UpdateCountsRequest: stars, votes
  - SetHiddenRequest: hidden
  - LoginRequest: password

# Response Types

  - ListEntriesResponse: entries
  - UploadAssetResponse: reference
  - LoginResponse: expires_at
  - ErrorResponse: error, message
*/
package models
