package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andinalabs/cataloghub/internal/config"
	"github.com/andinalabs/cataloghub/internal/domain/enterprise"
	"github.com/andinalabs/cataloghub/internal/domain/product"
	"github.com/andinalabs/cataloghub/internal/domain/user"
	"github.com/andinalabs/cataloghub/internal/session"
)

// FixturesHandler seeds demo data: one admin, one standard user, an
// enterprise and a handful of products. Dev/test convenience; the router only
// mounts it outside prod.
type FixturesHandler struct {
	sessions    *session.Manager
	enterprises EnterprisesRepository
	products    ProductsRepository
}

func NewFixturesHandler(sessions *session.Manager, enterprises EnterprisesRepository, products ProductsRepository) *FixturesHandler {
	return &FixturesHandler{
		sessions:    sessions,
		enterprises: enterprises,
		products:    products,
	}
}

const (
	fixtureAdminEmail = "admin.demo@cataloghub.dev"
	fixtureUserEmail  = "client.demo@cataloghub.dev"
	fixturePassword   = "demo-password-1"
	fixtureNIT        = "1234567890-1"
)

func (h *FixturesHandler) Generate(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := h.seedUsers(cctx); err != nil {
		RespondInternal(ctx, "Could not generate fixtures")
		return
	}

	created, err := h.seedCatalog(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not generate fixtures")
		return
	}

	RespondData(ctx, http.StatusOK, gin.H{
		"users":      []string{fixtureAdminEmail, fixtureUserEmail},
		"enterprise": fixtureNIT,
		"products":   created,
	})
}

func (h *FixturesHandler) seedUsers(ctx context.Context) error {
	_, err := h.sessions.RegisterAdmin(ctx, fixtureAdminEmail, fixturePassword, user.RoleAdmin)

	if err != nil && !errors.Is(err, session.ErrDuplicateEmail) {
		return err
	}

	_, err = h.sessions.Register(ctx, fixtureUserEmail, fixturePassword)

	if err != nil && !errors.Is(err, session.ErrDuplicateEmail) {
		return err
	}

	return nil
}

func (h *FixturesHandler) seedCatalog(ctx context.Context) (int, error) {
	_, err := h.enterprises.Create(ctx, enterprise.CreateEnterpriseRequest{
		NIT:         fixtureNIT,
		Name:        "Enterprise Test",
		Address:     "Calle 123",
		PhoneNumber: "1234567890",
	})

	if err != nil && !errors.Is(err, enterprise.ErrDuplicateNIT) {
		return 0, err
	}

	created := 0

	for i := 0; i < 10; i++ {
		_, err := h.products.Create(ctx, product.CreateProductRequest{
			Name:       fmt.Sprintf("Product %d", i),
			Code:       fmt.Sprintf("P%d", i),
			Properties: "some properties",
			Prices: []product.Price{
				{Code: "USD", Price: float64(10 + i)},
				{Code: "EUR", Price: float64(20 + i)},
				{Code: "GBP", Price: float64(30 + i)},
			},
			NIT: fixtureNIT,
		})

		if err != nil {
			return created, err
		}

		created++
	}

	return created, nil
}
