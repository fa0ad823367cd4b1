package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andinalabs/cataloghub/internal/auth"
	"github.com/andinalabs/cataloghub/internal/config"
	"github.com/andinalabs/cataloghub/internal/domain/user"
	"github.com/andinalabs/cataloghub/internal/session"
)

// SessionService is the slice of the session manager these handlers drive.
type SessionService interface {
	Register(ctx context.Context, email, password string) (user.Profile, error)
	RegisterAdmin(ctx context.Context, email, password, role string) (user.Profile, error)
	Login(ctx context.Context, email, password string) (session.LoginResult, error)
	Refresh(ctx context.Context, rawRefresh string) (session.LoginResult, error)
	Logout(ctx context.Context, rawRefresh string) error
}

type UsersHandler struct {
	sessions   SessionService
	appURL     string
	refreshTTL time.Duration
}

func NewUsersHandler(sessions SessionService, cfg config.Config) *UsersHandler {
	return &UsersHandler{
		sessions:   sessions,
		appURL:     cfg.AppURL,
		refreshTTL: cfg.RefreshTTL,
	}
}

// Bodies are decoded without binding tags on purpose: the session manager
// owns validation, and these endpoints answer with the flat {"error": msg}
// shape rather than the structured catalog envelope.

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UsersHandler) Register(ctx *gin.Context) {
	var req registerRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Bad data in body"})
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	profile, err := h.sessions.Register(cctx, req.Email, req.Password)

	if err != nil {
		h.respondRegisterError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "data": profile})
}

func (h *UsersHandler) RegisterAdmin(ctx *gin.Context) {
	var req registerRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Bad data in body"})
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	profile, err := h.sessions.RegisterAdmin(cctx, req.Email, req.Password, req.Role)

	if err != nil {
		h.respondRegisterError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "data": profile})
}

func (h *UsersHandler) Login(ctx *gin.Context) {
	var req loginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	result, err := h.sessions.Login(cctx, req.Email, req.Password)

	if err != nil {
		switch {
		case errors.Is(err, session.ErrMissingFields):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		case errors.Is(err, session.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, session.ErrInvalidCredentials):
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
		}
		return
	}

	h.respondSession(ctx, result)
}

// Refresh exchanges the refresh cookie for a fresh token pair. It answers
// with the same payload shape as login so clients reuse one code path.
func (h *UsersHandler) Refresh(ctx *gin.Context) {
	raw, err := ctx.Cookie(auth.CookieName)

	if err != nil || raw == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Missing refresh token"})
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	result, err := h.sessions.Refresh(cctx, raw)

	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error refreshing session"})
		return
	}

	h.respondSession(ctx, result)
}

// Logout drops the stored refresh token hash and expires the cookie. Always
// succeeds from the caller's point of view.
func (h *UsersHandler) Logout(ctx *gin.Context) {
	raw, _ := ctx.Cookie(auth.CookieName)

	if raw != "" {
		cctx, cancel := config.WithTimeout(3 * time.Second)
		defer cancel()

		_ = h.sessions.Logout(cctx, raw)
	}

	http.SetCookie(ctx.Writer, auth.ClearRefreshCookie(h.appURL, time.Now().UTC()))
	ctx.Status(http.StatusNoContent)
}

func (h *UsersHandler) respondRegisterError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrMissingFields):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Bad data in body"})
	case errors.Is(err, session.ErrWeakPassword):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Password too short"})
	case errors.Is(err, session.ErrInvalidEmail):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
	case errors.Is(err, session.ErrDuplicateEmail):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
	case errors.Is(err, session.ErrInvalidRole):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user role"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
	}
}

func (h *UsersHandler) respondSession(ctx *gin.Context, result session.LoginResult) {
	http.SetCookie(ctx.Writer, auth.RefreshCookie(h.appURL, result.RefreshToken, h.refreshTTL, result.ServerTime))

	ctx.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data": gin.H{
			"jwt":                 result.AccessToken,
			"expires_at":          result.AccessExpiresAt.Unix(),
			"current_time_server": result.ServerTime.Unix(),
			"user": gin.H{
				"name":  result.Profile.Name,
				"email": result.Profile.Email,
				"role":  result.Profile.Role,
			},
		},
	})
}
