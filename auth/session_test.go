// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionsIssueVerify(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)

	token, exp, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if d := time.Until(exp); d < 59*time.Minute || d > time.Hour {
		t.Errorf("unexpected expiry %v from now", d)
	}

	if err := s.Verify(token); err != nil {
		t.Errorf("Verify() rejected fresh token: %v", err)
	}
}

func TestSessionsRejects(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)
	good, _, _ := s.Issue()

	other := NewSessions("other-secret", time.Hour)
	foreign, _, _ := other.Issue()

	expired := NewSessions("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, _ := expired.Issue()

	wrongSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   "visitor",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	visitor, _ := wrongSubject.SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
		{"wrong subject", visitor},
		{"tampered", good + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Verify(tt.token); !errors.Is(err, ErrInvalidSession) {
				t.Errorf("Verify() error = %v, want ErrInvalidSession", err)
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)
	token, exp, _ := s.Issue()

	req := httptest.NewRequest("GET", "/admin/entries", nil)
	if err := s.FromRequest(req); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("missing cookie should be rejected, got %v", err)
	}

	req.AddCookie(SessionCookie(token, exp))
	if err := s.FromRequest(req); err != nil {
		t.Errorf("valid cookie rejected: %v", err)
	}
}

func TestCookies(t *testing.T) {
	c := SessionCookie("tok", time.Now().Add(time.Hour))
	if c.Name != CookieName || !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Errorf("unexpected session cookie: %+v", c)
	}

	cleared := ClearCookie()
	if cleared.Name != CookieName || cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Errorf("unexpected cleared cookie: %+v", cleared)
	}
}
