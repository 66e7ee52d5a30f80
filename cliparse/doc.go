// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AssetDir: Directory for uploaded files (default: ./uploads)
  - MaxUpload: Upload size limit in bytes (default: 10MB)
  - AdminPassword / AdminPasswordHash: Moderator credential (one required)
  - SessionSecret: HS256 key for admin sessions (required)
  - SessionTTL: Admin session lifetime (default: 12h)
  - PageSize: Entries per feed page (default: 5)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-assets          Asset directory
	-max-upload      Upload size limit, human readable (10MB, 2 MiB)
	-session-secret  Session signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ASSET_DIR      → -assets
	MAX_UPLOAD     → -max-upload
	SESSION_SECRET → -session-secret

ADMIN_PASSWORD, ADMIN_PASSWORD_HASH, SESSION_TTL and PAGE_SIZE are read from
the environment only.

CLI flags take precedence over environment variables. LoadEnv reads a .env
file first (github.com/joho/godotenv) without overriding variables that are
already set.

# Example

	// In main.go
	if err := cliparse.LoadEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
*/
package cliparse
