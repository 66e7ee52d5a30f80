// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists gallery entries with database/sql.

SQLStore implements the feed capabilities (Querier, Inserter, Updater) for
both SQLite and PostgreSQL; all statements use $N placeholders.

# Timestamps

created_at is stored as unix microseconds. InsertEntry reads the newest
stored timestamp in the same transaction and assigns max(now, newest+1µs),
so no two entries share a timestamp and a strict "older than" cursor never
skips a row. The unique index on created_at catches concurrent writers;
the insert is retried a few times on conflict.

# Updates

UpdateEntry accepts counts, the hidden flag, or both. Counts must be set
together and equal. Unknown ids return ErrNotFound.
*/
package store
