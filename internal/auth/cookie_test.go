package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/andinalabs/cataloghub/internal/auth"
)

func TestRefreshCookieScoping(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 24 * time.Hour

	tests := []struct {
		name         string
		appURL       string
		wantDomain   string
		wantSameSite http.SameSite
		wantSecure   bool
	}{
		{
			name:         "plain localhost",
			appURL:       "http://localhost",
			wantDomain:   "",
			wantSameSite: 0,
			wantSecure:   false,
		},
		{
			name:         "localhost with port",
			appURL:       "http://localhost:3000",
			wantDomain:   "",
			wantSameSite: 0,
			wantSecure:   false,
		},
		{
			name:         "https localhost",
			appURL:       "https://localhost",
			wantDomain:   "",
			wantSameSite: 0,
			wantSecure:   false,
		},
		{
			name:         "production domain",
			appURL:       "https://catalog.example.com",
			wantDomain:   "catalog.example.com",
			wantSameSite: http.SameSiteStrictMode,
			wantSecure:   true,
		},
		{
			name:         "domain with path",
			appURL:       "https://api.example.com/v1",
			wantDomain:   "api.example.com",
			wantSameSite: http.SameSiteStrictMode,
			wantSecure:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := auth.RefreshCookie(tt.appURL, "raw-token", ttl, now)

			if c.Name != auth.CookieName {
				t.Errorf("cookie name = %q, want %q", c.Name, auth.CookieName)
			}

			if !c.HttpOnly {
				t.Errorf("cookie must always be HttpOnly")
			}

			if c.Domain != tt.wantDomain {
				t.Errorf("domain = %q, want %q", c.Domain, tt.wantDomain)
			}

			if c.SameSite != tt.wantSameSite {
				t.Errorf("sameSite = %v, want %v", c.SameSite, tt.wantSameSite)
			}

			if c.Secure != tt.wantSecure {
				t.Errorf("secure = %v, want %v", c.Secure, tt.wantSecure)
			}

			wantExpires := now.Add(ttl)

			if !c.Expires.Equal(wantExpires) {
				t.Errorf("expires = %v, want %v", c.Expires, wantExpires)
			}
		})
	}
}

func TestClearRefreshCookie(t *testing.T) {
	now := time.Now().UTC()

	c := auth.ClearRefreshCookie("https://catalog.example.com", now)

	if c.Value != "" {
		t.Errorf("cleared cookie should have an empty value")
	}

	if c.MaxAge != -1 {
		t.Errorf("cleared cookie MaxAge = %d, want -1", c.MaxAge)
	}

	if !c.Expires.Before(now) {
		t.Errorf("cleared cookie must expire in the past")
	}

	if c.Domain != "catalog.example.com" {
		t.Errorf("cleared cookie must keep the same domain scoping, got %q", c.Domain)
	}
}
