// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-gallery/auth"
	"github.com/danielhkuo/quickly-gallery/models"
)

func TestWithLogging(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
		body       string
	}{
		{"feed page", "GET", "/entries", http.StatusOK, `{"entries":[]}`},
		{"submission", "POST", "/entries", http.StatusCreated, `{"id":1}`},
		{"vote", "PATCH", "/entries/1/counts", http.StatusNoContent, ""},
		{"missing entry", "GET", "/entries/9", http.StatusNotFound, `{"error":"Not Found"}`},
		{"implicit 200", "GET", "/health", 0, "ok"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				if tc.statusCode != 0 {
					w.WriteHeader(tc.statusCode)
				}
				w.Write([]byte(tc.body))
			})

			w := httptest.NewRecorder()
			handler(w, httptest.NewRequest(tc.method, tc.path, nil))

			want := tc.statusCode
			if want == 0 {
				want = http.StatusOK
			}
			if w.Code != want {
				t.Errorf("Expected status %d, got %d", want, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body %q, got %q", tc.body, w.Body.String())
			}
		})
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/entries", nil))

		id := w.Header().Get("X-Request-ID")
		if len(id) != 16 {
			t.Fatalf("Expected 16 char request id, got %q", id)
		}
		if seen[id] {
			t.Errorf("Request id %q reused", id)
		}
		seen[id] = true
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, models.UploadAssetResponse{Reference: "/assets/a.png"})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
	}
	if body := strings.TrimSpace(w.Body.String()); body != `{"reference":"/assets/a.png"}` {
		t.Errorf("Unexpected body %s", body)
	}

	// Empty pages encode as [] so clients can stop on len == 0
	w = httptest.NewRecorder()
	JSONResponse(w, http.StatusOK, models.ListEntriesResponse{Entries: []models.Entry{}})
	if body := strings.TrimSpace(w.Body.String()); body != `{"entries":[]}` {
		t.Errorf("Unexpected empty page body %s", body)
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		statusCode int
		message    string
		wantError  string
	}{
		{http.StatusBadRequest, "title is required", "Bad Request"},
		{http.StatusUnauthorized, "Admin login required", "Unauthorized"},
		{http.StatusConflict, "Asset already exists", "Conflict"},
		{http.StatusRequestEntityTooLarge, "Asset too large", "Request Entity Too Large"},
	}

	for _, tc := range testCases {
		t.Run(tc.wantError, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.wantError || resp.Message != tc.message {
				t.Errorf("Got %+v, want error %q message %q", resp, tc.wantError, tc.message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		want    models.UpdateCountsRequest
		wantErr bool
	}{
		{"counts", `{"stars":3,"votes":3}`, models.UpdateCountsRequest{Stars: 3, Votes: 3}, false},
		{"unknown fields ignored", `{"stars":1,"votes":1,"hidden":true}`, models.UpdateCountsRequest{Stars: 1, Votes: 1}, false},
		{"invalid JSON", `{stars: 1}`, models.UpdateCountsRequest{}, true},
		{"wrong type", `{"stars":"one"}`, models.UpdateCountsRequest{}, true},
		{"empty body", ``, models.UpdateCountsRequest{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("PATCH", "/entries/1/counts", strings.NewReader(tc.body))

			var got models.UpdateCountsRequest
			err := ParseJSONBody(req, &got)

			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseJSONBody() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("Got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("handled"))
	}))

	testCases := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantBody   string
		wantOrigin string
	}{
		{"preflight", "OPTIONS", "http://localhost:5173", http.StatusNoContent, "", "http://localhost:5173"},
		{"feed request", "GET", "https://gallery.example.com", http.StatusOK, "handled", "https://gallery.example.com"},
		{"no origin", "GET", "", http.StatusOK, "handled", "*"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/entries", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if w.Body.String() != tc.wantBody {
				t.Errorf("Expected body %q, got %q", tc.wantBody, w.Body.String())
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tc.wantOrigin)
			}
			if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Error("Expected credentials to be allowed for the admin cookie")
			}
			if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "PATCH") {
				t.Error("Expected PATCH to be allowed for votes and moderation")
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"}, "127.0.0.1:1", "203.0.113.195"},
		{"forwarded over real ip", map[string]string{"X-Forwarded-For": "192.168.1.100", "X-Real-IP": "203.0.113.50"}, "10.0.0.1:1", "192.168.1.100"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.50"}, "10.0.0.1:1", "203.0.113.50"},
		{"blank forwarded", map[string]string{"X-Forwarded-For": " , 10.0.0.9"}, "10.0.0.5:8080", "10.0.0.5"},
		{"remote with port", nil, "192.168.1.50:54321", "192.168.1.50"},
		{"remote without port", nil, "192.168.1.50", "192.168.1.50"},
		{"ipv6 remote", nil, "[::1]:12345", "::1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/entries", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, got)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	sessions := auth.NewSessions("test-secret", time.Hour)
	token, exp, err := sessions.Issue()
	if err != nil {
		t.Fatal(err)
	}
	expired, _, err := auth.NewSessions("test-secret", -time.Minute).Issue()
	if err != nil {
		t.Fatal(err)
	}
	foreign, _, err := auth.NewSessions("other-secret", time.Hour).Issue()
	if err != nil {
		t.Fatal(err)
	}

	called := false
	handler := RequireAdmin(sessions, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantCalled bool
	}{
		{"no cookie", nil, http.StatusUnauthorized, false},
		{"bad token", auth.SessionCookie("garbage", exp), http.StatusUnauthorized, false},
		{"expired session", auth.SessionCookie(expired, exp), http.StatusUnauthorized, false},
		{"other secret", auth.SessionCookie(foreign, exp), http.StatusUnauthorized, false},
		{"valid session", auth.SessionCookie(token, exp), http.StatusNoContent, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest("GET", "/admin/entries", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if called != tc.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tc.wantCalled)
			}
		})
	}
}
