// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package assets stores uploaded submission files on local disk.

	store, err := assets.NewFileStore(cfg.AssetDir, cfg.MaxUpload)
	ref, err := store.PutAsset(ctx, "3f2c...e1.png", body) // "/assets/3f2c...e1.png"

Names must be a single path element and are never overwritten. JPEG, PNG
and GIF uploads also get a 300px JPEG thumbnail under thumbs/, generated with
github.com/nfnt/resize. A thumbnail failure is logged and does not fail the
upload.
*/
package assets
