// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// DriverName maps a database type to its database/sql driver name.
func DriverName(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite:
		return "sqlite", nil
	case TypePostgres:
		return "postgres", nil
	}
	return "", fmt.Errorf("unsupported database type %q", dbType)
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	var idColumn string
	switch dbType {
	case TypeSQLite:
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	case TypePostgres:
		idColumn = "id BIGSERIAL PRIMARY KEY"
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	_, err := db.Exec(fmt.Sprintf(schema, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// created_at holds unix microseconds
const schema = `
-- Entries
CREATE TABLE IF NOT EXISTS entry (
    %s,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    contact TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    image_path TEXT NOT NULL DEFAULT '',
    video_url TEXT NOT NULL DEFAULT '',
    stars INTEGER NOT NULL DEFAULT 0 CHECK (stars >= 0),
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
    hidden BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entry_feed ON entry(hidden, created_at DESC);
CREATE UNIQUE INDEX IF NOT EXISTS idx_entry_created_at ON entry(created_at);
`
