// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-gallery/feed"
	"github.com/danielhkuo/quickly-gallery/models"
)

// MaxPageSize caps the limit of a single page request.
const MaxPageSize = 100

var (
	ErrNotFound     = errors.New("entry not found")
	ErrInvalidPatch = errors.New("invalid patch")
)

// insertAttempts bounds retries when two inserts race for the same created_at.
const insertAttempts = 3

// SQLStore persists entries in the entry table.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

const entryColumns = `id, title, description, contact, author, image_path, video_url, stars, votes, hidden, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var e models.Entry
	var createdAt int64
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Contact, &e.Author,
		&e.ImagePath, &e.VideoURL, &e.Stars, &e.Votes, &e.Hidden, &createdAt)
	if err != nil {
		return models.Entry{}, err
	}
	e.CreatedAt = time.UnixMicro(createdAt).UTC()
	return e, nil
}

// QueryEntries returns one page of entries with the requested hidden flag,
// newest first, strictly older than q.OlderThan when it is set.
func (s *SQLStore) QueryEntries(ctx context.Context, q feed.Query) ([]models.Entry, error) {
	hidden := q.Hidden
	return s.list(ctx, &hidden, q.OlderThan, q.Limit)
}

// ListAll returns entries regardless of the hidden flag, newest first.
func (s *SQLStore) ListAll(ctx context.Context, before *time.Time, limit int) ([]models.Entry, error) {
	return s.list(ctx, nil, before, limit)
}

func (s *SQLStore) list(ctx context.Context, hidden *bool, before *time.Time, limit int) ([]models.Entry, error) {
	if limit <= 0 {
		limit = feed.DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	var where []string
	var args []any
	if hidden != nil {
		args = append(args, *hidden)
		where = append(where, fmt.Sprintf("hidden = $%d", len(args)))
	}
	if before != nil {
		args = append(args, before.UnixMicro())
		where = append(where, fmt.Sprintf("created_at < $%d", len(args)))
	}
	args = append(args, limit)

	query := `SELECT ` + entryColumns + ` FROM entry`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	return entries, nil
}

// GetEntry returns a single entry, hidden or not.
func (s *SQLStore) GetEntry(ctx context.Context, id int64) (models.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entry WHERE id = $1`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, ErrNotFound
	}
	if err != nil {
		return models.Entry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// InsertEntry stores a draft with zero counters and hidden=false. The
// assigned created_at is strictly later than every stored entry.
func (s *SQLStore) InsertEntry(ctx context.Context, d models.EntryDraft) (models.Entry, error) {
	var lastErr error
	for attempt := 0; attempt < insertAttempts; attempt++ {
		e, err := s.insertOnce(ctx, d)
		if err == nil {
			return e, nil
		}
		if !isUniqueViolation(err) {
			return models.Entry{}, err
		}
		lastErr = err
	}
	return models.Entry{}, lastErr
}

func (s *SQLStore) insertOnce(ctx context.Context, d models.EntryDraft) (models.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Entry{}, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	var latest int64
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(created_at), 0) FROM entry`).Scan(&latest)
	if err != nil {
		return models.Entry{}, fmt.Errorf("read latest timestamp: %w", err)
	}

	createdAt := s.now().UnixMicro()
	if createdAt <= latest {
		createdAt = latest + 1
	}

	e := models.Entry{
		Title:       d.Title,
		Description: d.Description,
		Contact:     d.Contact,
		Author:      d.Author,
		ImagePath:   d.ImagePath,
		VideoURL:    d.VideoURL,
		CreatedAt:   time.UnixMicro(createdAt).UTC(),
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO entry (title, description, contact, author, image_path, video_url, stars, votes, hidden, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0, $7, $8)
		RETURNING id
	`, e.Title, e.Description, e.Contact, e.Author, e.ImagePath, e.VideoURL, false, createdAt).Scan(&e.ID)
	if err != nil {
		return models.Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Entry{}, fmt.Errorf("commit insert: %w", err)
	}

	return e, nil
}

// UpdateEntry applies a partial update. Counters must be set together and
// equal, since every vote is worth exactly one star.
func (s *SQLStore) UpdateEntry(ctx context.Context, id int64, p models.EntryPatch) error {
	if err := validatePatch(p); err != nil {
		return err
	}

	var sets []string
	var args []any
	if p.Stars != nil {
		args = append(args, *p.Stars)
		sets = append(sets, fmt.Sprintf("stars = $%d", len(args)))
		args = append(args, *p.Votes)
		sets = append(sets, fmt.Sprintf("votes = $%d", len(args)))
	}
	if p.Hidden != nil {
		args = append(args, *p.Hidden)
		sets = append(sets, fmt.Sprintf("hidden = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE entry SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func validatePatch(p models.EntryPatch) error {
	if p.Empty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidPatch)
	}
	if (p.Stars == nil) != (p.Votes == nil) {
		return fmt.Errorf("%w: stars and votes must be set together", ErrInvalidPatch)
	}
	if p.Stars != nil {
		if *p.Stars < 0 || *p.Votes < 0 {
			return fmt.Errorf("%w: counts cannot be negative", ErrInvalidPatch)
		}
		if *p.Stars != *p.Votes {
			return fmt.Errorf("%w: stars must equal votes", ErrInvalidPatch)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
