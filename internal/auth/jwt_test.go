package auth_test

import (
	"testing"
	"time"

	"github.com/andinalabs/cataloghub/internal/auth"
	"github.com/andinalabs/cataloghub/internal/domain/user"
)

func newManager(t *testing.T) *auth.Manager {
	t.Helper()

	m, err := auth.NewManager("test-secret-key", 15*time.Minute, 24*time.Hour)

	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	return m
}

func testProfile() user.Profile {
	return user.Profile{
		Name:  "wilson",
		Email: "wilson@example.com",
		Role:  user.RoleAdmin,
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := auth.NewManager("", time.Minute, time.Hour)

	if err != auth.ErrNoSigningKey {
		t.Fatalf("want ErrNoSigningKey, got %v", err)
	}
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	m := newManager(t)
	now := time.Now().UTC()

	raw, expiresAt, err := m.IssueAccessToken(testProfile(), now)

	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}

	wantExpiry := now.Add(15 * time.Minute)

	if expiresAt.Unix() != wantExpiry.Unix() {
		t.Errorf("expiry = %v, want %v", expiresAt, wantExpiry)
	}

	claims, err := m.VerifyAccessToken(raw)

	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}

	if claims.Email != "wilson@example.com" || claims.Role != user.RoleAdmin || claims.Name != "wilson" {
		t.Errorf("claims profile mismatch: %+v", claims)
	}

	if claims.Version != auth.ClaimsVersion {
		t.Errorf("claims version = %d, want %d", claims.Version, auth.ClaimsVersion)
	}
}

func TestTokenTypeIsEnforced(t *testing.T) {
	m := newManager(t)
	now := time.Now().UTC()

	access, _, err := m.IssueAccessToken(testProfile(), now)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	refresh, _, err := m.IssueRefreshToken(testProfile(), now)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if _, err := m.VerifyRefreshToken(access); err == nil {
		t.Errorf("an access token must not verify as a refresh token")
	}

	if _, err := m.VerifyAccessToken(refresh); err == nil {
		t.Errorf("a refresh token must not verify as an access token")
	}
}

func TestForeignKeyIsRejected(t *testing.T) {
	m := newManager(t)

	other, err := auth.NewManager("some-other-secret", 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	raw, _, err := other.IssueAccessToken(testProfile(), time.Now().UTC())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.VerifyAccessToken(raw); err == nil {
		t.Errorf("token signed with a different key must not verify")
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	m, err := auth.NewManager("test-secret-key", -time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	raw, _, err := m.IssueAccessToken(testProfile(), time.Now().UTC())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.VerifyAccessToken(raw); err == nil {
		t.Errorf("already-expired token must not verify")
	}
}

func TestHashRefreshToken(t *testing.T) {
	m := newManager(t)

	a := m.HashRefreshToken("token-a")
	b := m.HashRefreshToken("token-b")

	if a == "token-a" {
		t.Errorf("hash must not echo the raw token")
	}

	if a == b {
		t.Errorf("different tokens must hash differently")
	}

	if a != m.HashRefreshToken("token-a") {
		t.Errorf("hash must be deterministic so stored hashes stay comparable")
	}
}
