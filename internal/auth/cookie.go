package auth

import (
	"net/http"
	"net/url"
	"time"
)

// CookieName carries the refresh token between login and refresh calls.
const CookieName = "jwt"

// RefreshCookie builds the refresh token cookie for the configured public app
// URL. Localhost deployments get an unscoped cookie because strict cross-site
// rules cannot be satisfied there; behind a real domain the cookie is pinned
// to that host with SameSite=Strict.
func RefreshCookie(appURL, rawToken string, refreshTTL time.Duration, now time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    rawToken,
		Path:     "/",
		HttpOnly: true,
		Expires:  now.Add(refreshTTL),
	}

	host := hostOf(appURL)

	if host == "" || host == "localhost" {
		return c
	}

	c.Domain = host
	c.SameSite = http.SameSiteStrictMode
	c.Secure = true

	return c
}

// ClearRefreshCookie expires the refresh cookie with the same scoping rules,
// so browsers actually drop it.
func ClearRefreshCookie(appURL string, now time.Time) *http.Cookie {
	c := RefreshCookie(appURL, "", 0, now)
	c.Expires = time.Unix(0, 0)
	c.MaxAge = -1

	return c
}

func hostOf(appURL string) string {
	u, err := url.Parse(appURL)

	if err != nil || u.Hostname() == "" {
		return ""
	}

	return u.Hostname()
}
