// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nfnt/resize"
)

// ReferencePrefix is the URL path under which stored assets are served.
const ReferencePrefix = "/assets/"

const (
	thumbDir     = "thumbs"
	thumbSize    = 300
	thumbQuality = 85
)

var (
	ErrInvalidName = errors.New("invalid asset name")
	ErrExists      = errors.New("asset already exists")
	ErrTooLarge    = errors.New("asset too large")
	ErrNotFound    = errors.New("asset not found")
)

// FileStore keeps uploaded assets as flat files in one directory.
type FileStore struct {
	dir     string
	maxSize int64
}

// NewFileStore creates the asset and thumbnail directories. maxSize <= 0
// disables the size limit.
func NewFileStore(dir string, maxSize int64) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, thumbDir), 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	return &FileStore{dir: dir, maxSize: maxSize}, nil
}

func (s *FileStore) MaxSize() int64 { return s.maxSize }

// Reference returns the URL path for a stored asset.
func Reference(name string) string {
	return ReferencePrefix + name
}

// ParseReference returns the asset name a Reference points at. Thumbnail
// references and anything outside ReferencePrefix are rejected.
func ParseReference(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, ReferencePrefix)
	if !ok || !validName(name) {
		return "", false
	}
	return name, true
}

// ThumbnailReference returns the URL path for an asset's thumbnail.
func ThumbnailReference(name string) string {
	return ReferencePrefix + thumbDir + "/" + name
}

func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return filepath.Base(name) == name
}

// PutAsset writes body under name. Existing names are never overwritten.
func (s *FileStore) PutAsset(ctx context.Context, name string, body io.Reader) (string, error) {
	if !validName(name) {
		return "", ErrInvalidName
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrExists
		}
		return "", fmt.Errorf("create asset: %w", err)
	}

	src := body
	if s.maxSize > 0 {
		src = io.LimitReader(body, s.maxSize+1)
	}

	n, err := io.Copy(f, src)
	closeErr := f.Close()
	switch {
	case err != nil:
		err = fmt.Errorf("write asset: %w", err)
	case closeErr != nil:
		err = fmt.Errorf("close asset: %w", closeErr)
	case s.maxSize > 0 && n > s.maxSize:
		err = ErrTooLarge
	case ctx.Err() != nil:
		err = ctx.Err()
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}

	slog.Info("asset stored", "name", name, "size", humanize.Bytes(uint64(n)))

	if isImage(name) {
		if err := s.writeThumbnail(name); err != nil {
			slog.Warn("thumbnail failed", "name", name, "error", err)
		}
	}

	return Reference(name), nil
}

func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

func (s *FileStore) writeThumbnail(name string) error {
	src, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	thumb := resize.Thumbnail(thumbSize, thumbSize, img, resize.Lanczos3)

	out, err := os.Create(s.thumbPath(name))
	if err != nil {
		return err
	}
	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: thumbQuality}); err != nil {
		out.Close()
		_ = os.Remove(s.thumbPath(name))
		return fmt.Errorf("encode: %w", err)
	}
	return out.Close()
}

func (s *FileStore) thumbPath(name string) string {
	return filepath.Join(s.dir, thumbDir, name+".jpg")
}

// Open returns a stored asset for reading.
func (s *FileStore) Open(name string) (*os.File, error) {
	return s.open(name, filepath.Join(s.dir, name))
}

// OpenThumbnail returns the JPEG thumbnail of an image asset.
func (s *FileStore) OpenThumbnail(name string) (*os.File, error) {
	return s.open(name, s.thumbPath(name))
}

func (s *FileStore) open(name, path string) (*os.File, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}
	return f, nil
}
