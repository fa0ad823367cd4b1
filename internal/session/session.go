package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/andinalabs/cataloghub/internal/auth"
	"github.com/andinalabs/cataloghub/internal/domain/user"
	"github.com/andinalabs/cataloghub/internal/security"
	"github.com/google/uuid"
)

// Store is the credential store adapter the manager drives. Implementations
// must keep each call atomic at single-row granularity; nothing here needs a
// multi-row transaction.
type Store interface {
	FindByEmail(ctx context.Context, email string) (user.User, error)
	FindByID(ctx context.Context, id string) (user.User, error)
	Insert(ctx context.Context, u user.User) (user.User, error)
	UpdateRefreshTokenHash(ctx context.Context, id string, hash *string) error
}

// LoginResult is everything the HTTP layer needs to answer a successful
// login or refresh: the pair of tokens, the absolute access expiry plus the
// current server instant (so clients can correct for clock skew), and the
// presentation profile.
type LoginResult struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
	ServerTime      time.Time
	Profile         user.Profile
}

// Manager owns the credential and session token lifecycle: registration,
// password verification, dual-token issuance and refresh token rotation. At
// most one refresh token per user is valid at any time; issuing a new one
// overwrites the stored hash of the previous one. Two concurrent logins both
// succeed and the later write wins, which keeps that invariant.
type Manager struct {
	store       Store
	hasher      *security.Hasher
	tokens      *auth.Manager
	minPassword int
	log         *slog.Logger

	now func() time.Time
}

func NewManager(store Store, hasher *security.Hasher, tokens *auth.Manager, minPassword int, log *slog.Logger) *Manager {
	if minPassword <= 0 {
		minPassword = 8
	}

	return &Manager{
		store:       store,
		hasher:      hasher,
		tokens:      tokens,
		minPassword: minPassword,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a standard user. Any role hint from the caller is ignored
// on this path.
func (m *Manager) Register(ctx context.Context, email, password string) (user.Profile, error) {
	return m.register(ctx, email, password, user.RoleUser)
}

// RegisterAdmin is the distinct admin entry point: the requested role must be
// exactly the admin role.
func (m *Manager) RegisterAdmin(ctx context.Context, email, password, role string) (user.Profile, error) {
	if role != user.RoleAdmin {
		return user.Profile{}, ErrInvalidRole
	}

	return m.register(ctx, email, password, user.RoleAdmin)
}

func (m *Manager) register(ctx context.Context, email, password, role string) (user.Profile, error) {
	if email == "" || password == "" {
		return user.Profile{}, ErrMissingFields
	}

	if len(password) < m.minPassword {
		return user.Profile{}, ErrWeakPassword
	}

	if !validEmail(email) {
		return user.Profile{}, ErrInvalidEmail
	}

	_, err := m.store.FindByEmail(ctx, email)

	if err == nil {
		return user.Profile{}, ErrDuplicateEmail
	}

	if !errors.Is(err, user.ErrNotFound) {
		return user.Profile{}, err
	}

	hash, err := m.hasher.Hash(password)

	if err != nil {
		return user.Profile{}, err
	}

	now := m.now()

	created, err := m.store.Insert(ctx, user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         deriveName(email),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	if err != nil {
		return user.Profile{}, err
	}

	m.log.InfoContext(ctx, "user registered", "email", created.Email, "role", created.Role)

	// Registration and login are separate steps: no token is issued here.
	return created.Profile(), nil
}

// Login verifies the password and issues a fresh access/refresh pair. The
// hash of the new refresh token replaces whatever was stored before, which is
// the only invalidation mechanism for prior sessions.
func (m *Manager) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, ErrMissingFields
	}

	u, err := m.store.FindByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Logged distinctly from a wrong password; the caller still just
			// sees an unauthenticated response.
			m.log.WarnContext(ctx, "login for unknown email", "email", email)
			return LoginResult{}, ErrUserNotFound
		}
		return LoginResult{}, err
	}

	if !m.hasher.Verify(password, u.PasswordHash) {
		m.log.WarnContext(ctx, "login with wrong password", "email", email)
		return LoginResult{}, ErrInvalidCredentials
	}

	return m.issueSession(ctx, u)
}

// Refresh exchanges a valid refresh token for a new token pair, rotating the
// stored hash. Anything short of a full match fails closed.
func (m *Manager) Refresh(ctx context.Context, rawRefresh string) (LoginResult, error) {
	claims, err := m.tokens.VerifyRefreshToken(rawRefresh)

	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := m.store.FindByEmail(ctx, claims.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Account deleted after issuance: all outstanding refresh tokens
			// died with the stored hash.
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if u.RefreshTokenHash == nil || *u.RefreshTokenHash != m.tokens.HashRefreshToken(rawRefresh) {
		m.log.WarnContext(ctx, "refresh with superseded or unknown token", "email", u.Email)
		return LoginResult{}, ErrInvalidCredentials
	}

	return m.issueSession(ctx, u)
}

// Logout drops the stored refresh token hash. Safe to call with a stale or
// garbage token.
func (m *Manager) Logout(ctx context.Context, rawRefresh string) error {
	claims, err := m.tokens.VerifyRefreshToken(rawRefresh)

	if err != nil {
		return nil
	}

	u, err := m.store.FindByEmail(ctx, claims.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return err
	}

	return m.store.UpdateRefreshTokenHash(ctx, u.ID, nil)
}

func (m *Manager) issueSession(ctx context.Context, u user.User) (LoginResult, error) {
	now := m.now()

	// Both tokens carry the same claims payload: the stored profile, never
	// the password hash.
	profile := u.Profile()

	refresh, _, err := m.tokens.IssueRefreshToken(profile, now)

	if err != nil {
		return LoginResult{}, err
	}

	refreshHash := m.tokens.HashRefreshToken(refresh)

	if err := m.store.UpdateRefreshTokenHash(ctx, u.ID, &refreshHash); err != nil {
		return LoginResult{}, err
	}

	access, accessExpiry, err := m.tokens.IssueAccessToken(profile, now)

	if err != nil {
		return LoginResult{}, err
	}

	// Capitalization is presentation only; the claims and the stored record
	// keep the name as-is.
	profile.Name = capitalizeName(profile.Name)

	return LoginResult{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresAt: accessExpiry,
		ServerTime:      now,
		Profile:         profile,
	}, nil
}
