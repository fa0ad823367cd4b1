package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/andinalabs/cataloghub/internal/domain/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoSigningKey is fatal at construction time. A Manager is never built
// without a key, so issuance itself has no missing-key error path.
var ErrNoSigningKey = errors.New("jwt signing key is empty")

// ClaimsVersion pins the claims layout so future changes stay detectable.
const ClaimsVersion = 1

type Claims struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	Version   int    `json:"ver"`
	JTI       string `json:"jti"`
	jwt.RegisteredClaims
}

func (c *Claims) Profile() user.Profile {
	return user.Profile{
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
	}
}

// Manager signs and verifies the dual access/refresh token pair. The secret
// and TTLs are process-wide configuration, read-only after startup.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrNoSigningKey
	}

	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

func (m *Manager) issue(p user.Profile, tokenType string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)

	claims := Claims{
		Name:      p.Name,
		Email:     p.Email,
		Role:      p.Role,
		TokenType: tokenType,
		Version:   ClaimsVersion,
		JTI:       uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Subject:   p.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.secret)

	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (m *Manager) IssueAccessToken(p user.Profile, now time.Time) (string, time.Time, error) {
	return m.issue(p, "access", m.accessTTL, now)
}

func (m *Manager) IssueRefreshToken(p user.Profile, now time.Time) (string, time.Time, error) {
	return m.issue(p, "refresh", m.refreshTTL, now)
}

func (m *Manager) parseAndValidate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256
		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Version != ClaimsVersion {
		return nil, errors.New("unsupported claims version")
	}

	return claims, nil
}

func (m *Manager) VerifyAccessToken(tokenStr string) (*Claims, error) {
	claims, err := m.parseAndValidate(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "access" {
		return nil, errors.New("invalid token type")
	}
	return claims, nil
}

func (m *Manager) VerifyRefreshToken(tokenStr string) (*Claims, error) {
	claims, err := m.parseAndValidate(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, errors.New("invalid token type")
	}
	return claims, nil
}

// HashRefreshToken is the deterministic HMAC hash stored on the user row in
// place of the raw refresh token (server-side pepper = signing key bytes).
func (m *Manager) HashRefreshToken(raw string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}
