package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	ping func() error
}

// NewHealthHandler takes a ping func (usually the db pool's) so readiness
// reflects the one dependency every request needs.
func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Root is the service banner: a quick signal that the API process is up,
// with the server clock for client-side skew checks.
func (h *HealthHandler) Root(ctx *gin.Context) {
	now := time.Now().UTC()

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ON",
		"time":   now.Format(time.RFC1123),
		"date":   now.Format(time.RFC3339),
	})
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(ctx *gin.Context) {
	if h.ping != nil {
		if err := h.ping(); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
