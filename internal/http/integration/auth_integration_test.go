package integration_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andinalabs/cataloghub/internal/auth"
	"github.com/andinalabs/cataloghub/internal/domain/user"
	"github.com/andinalabs/cataloghub/internal/observability"
	"github.com/andinalabs/cataloghub/internal/repo/postgres"
	"github.com/andinalabs/cataloghub/internal/security"
	"github.com/andinalabs/cataloghub/internal/session"
)

// Runs against a real database when TEST_DB_DSN is set; skipped otherwise.
// The schema from migrations/001_init.sql must be applied.

func newDBSession(t *testing.T) (*session.Manager, *postgres.UsersRepo, func()) {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")

	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)

	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	prom := observability.NewProm(prometheus.NewRegistry())
	repo := postgres.NewUsersRepo(pool, prom)

	tokens, err := auth.NewManager("integration-secret", 15*time.Minute, 24*time.Hour)

	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager(repo, security.NewHasher(4), tokens, 8, log)

	return sessions, repo, pool.Close
}

func TestSessionLifecycleAgainstPostgres(t *testing.T) {
	sessions, repo, closePool := newDBSession(t)
	defer closePool()

	ctx := context.Background()
	email := fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())

	profile, err := sessions.Register(ctx, email, "longenough1")

	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if profile.Role != user.RoleUser {
		t.Fatalf("role = %q, want user", profile.Role)
	}

	// login stores exactly one refresh hash on the row

	res, err := sessions.Login(ctx, email, "longenough1")

	if err != nil {
		t.Fatalf("login: %v", err)
	}

	stored, err := repo.FindByEmail(ctx, email)

	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if stored.RefreshTokenHash == nil {
		t.Fatal("expected a stored refresh token hash after login")
	}

	firstHash := *stored.RefreshTokenHash

	// rotation through refresh

	res2, err := sessions.Refresh(ctx, res.RefreshToken)

	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	stored, err = repo.FindByEmail(ctx, email)

	if err != nil {
		t.Fatalf("find after refresh: %v", err)
	}

	if stored.RefreshTokenHash == nil || *stored.RefreshTokenHash == firstHash {
		t.Fatal("refresh must rotate the stored hash")
	}

	// the superseded token is rejected

	if _, err := sessions.Refresh(ctx, res.RefreshToken); err == nil {
		t.Fatal("expected superseded refresh token to be rejected")
	}

	// logout clears the hash

	if err := sessions.Logout(ctx, res2.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}

	stored, err = repo.FindByEmail(ctx, email)

	if err != nil {
		t.Fatalf("find after logout: %v", err)
	}

	if stored.RefreshTokenHash != nil {
		t.Fatal("logout must clear the stored refresh token hash")
	}
}
