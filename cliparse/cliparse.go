// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

// Defaults
const (
	DefaultPort       = 3318
	DefaultAssetDir   = "./uploads"
	DefaultMaxUpload  = "10MB"
	DefaultSessionTTL = 12 * time.Hour
	DefaultPageSize   = 5
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	AssetDir  string
	MaxUpload int64

	AdminPassword     string
	AdminPasswordHash string
	SessionSecret     string
	SessionTTL        time.Duration

	PageSize int
}

// LoadEnv reads a .env file into the process environment when one exists.
// Variables already set are not overridden.
func LoadEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var maxUpload string

	fs := flag.NewFlagSet("quickly-gallery", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Uploads
	fs.StringVar(&cfg.AssetDir, "assets", "", "Directory for uploaded assets")
	fs.StringVar(&maxUpload, "max-upload", "", "Maximum upload size (e.g. 10MB)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Admin session signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.AssetDir == "" {
		cfg.AssetDir = envOr("ASSET_DIR", DefaultAssetDir)
	}

	if maxUpload == "" {
		maxUpload = envOr("MAX_UPLOAD", DefaultMaxUpload)
	}
	size, err := humanize.ParseBytes(maxUpload)
	if err != nil || size == 0 {
		return Config{}, fmt.Errorf("invalid max upload size %q", maxUpload)
	}
	cfg.MaxUpload = int64(size)

	// Secrets - MUST be provided
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return Config{}, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH required")
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	cfg.SessionTTL = DefaultSessionTTL
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Config{}, errors.New("invalid SESSION_TTL env variable")
		}
		cfg.SessionTTL = d
	}

	cfg.PageSize = DefaultPageSize
	if ps := os.Getenv("PAGE_SIZE"); ps != "" {
		n, err := strconv.Atoi(ps)
		if err != nil || n <= 0 {
			return Config{}, errors.New("invalid PAGE_SIZE env variable")
		}
		cfg.PageSize = n
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
