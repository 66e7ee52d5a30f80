// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables for the given database type:

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Database Types

  - sqlite: modernc.org/sqlite (driver "sqlite"), the default
  - postgres: github.com/lib/pq (driver "postgres")

DriverName maps a type to the driver passed to sql.Open. The two schemas
differ only in the id column.

# Tables

  - entry: gallery submissions with counters and the hidden flag

created_at is stored as unix microseconds and is unique, so it can serve as
a strict pagination cursor.

# Indexes

  - entry.(hidden, created_at DESC) for public feed pages
  - entry.created_at (unique)
*/
package db
