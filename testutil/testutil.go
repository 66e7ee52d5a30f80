// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-gallery/cliparse"
	"github.com/danielhkuo/quickly-gallery/db"
)

// TestAdminPassword is the moderator password in GetTestConfig
const TestAdminPassword = "test-admin-password"

// SetupTestDB creates a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "gallery.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "file:test.db",
		DatabaseType:  db.TypeSQLite,
		AssetDir:      t.TempDir(),
		MaxUpload:     1 << 20,
		AdminPassword: TestAdminPassword,
		SessionSecret: "test-session-secret",
		SessionTTL:    time.Hour,
		PageSize:      5,
	}
}

// TestEntry describes a fixture row
type TestEntry struct {
	Title     string
	ImagePath string
	VideoURL  string
	Votes     int
	Hidden    bool
	CreatedAt time.Time
}

var (
	fixtureMu   sync.Mutex
	lastFixture time.Time
)

// fixtureNow is time.Now, bumped so fixtures never share a created_at
func fixtureNow() time.Time {
	fixtureMu.Lock()
	defer fixtureMu.Unlock()
	now := time.Now().Truncate(time.Microsecond)
	if !now.After(lastFixture) {
		now = lastFixture.Add(time.Microsecond)
	}
	lastFixture = now
	return now
}

// CreateTestEntry inserts an entry directly and returns its ID.
// A zero CreatedAt means now.
func CreateTestEntry(t *testing.T, conn *sql.DB, e TestEntry) int64 {
	t.Helper()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = fixtureNow()
	}
	if e.ImagePath == "" && e.VideoURL == "" {
		e.ImagePath = "/assets/" + e.Title + ".png"
	}

	var id int64
	err := conn.QueryRow(`
		INSERT INTO entry (title, description, contact, author, image_path, video_url, stars, votes, hidden, created_at)
		VALUES ($1, 'A test entry', 'test@example.com', 'TestUser', $2, $3, $4, $4, $5, $6)
		RETURNING id
	`, e.Title, e.ImagePath, e.VideoURL, e.Votes, e.Hidden, e.CreatedAt.UnixMicro()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test entry: %v", err)
	}

	return id
}

// SeedEntries creates n visible entries one second apart, oldest first, and
// returns their IDs in insertion order
func SeedEntries(t *testing.T, conn *sql.DB, n int) []int64 {
	t.Helper()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = CreateTestEntry(t, conn, TestEntry{
			Title:     "entry-" + string(rune('a'+i%26)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	return ids
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
