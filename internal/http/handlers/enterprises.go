package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andinalabs/cataloghub/internal/config"
	"github.com/andinalabs/cataloghub/internal/domain/enterprise"
)

type EnterprisesRepository interface {
	List(ctx context.Context) ([]enterprise.Enterprise, error)
	GetByNIT(ctx context.Context, nit string) (enterprise.Enterprise, error)
	Create(ctx context.Context, req enterprise.CreateEnterpriseRequest) (enterprise.Enterprise, error)
	Update(ctx context.Context, nit string, req enterprise.UpdateEnterpriseRequest) (enterprise.Enterprise, error)
	Delete(ctx context.Context, nit string) error
}

type EnterprisesHandler struct {
	repo EnterprisesRepository
}

func NewEnterprisesHandler(repo EnterprisesRepository) *EnterprisesHandler {
	return &EnterprisesHandler{repo: repo}
}

func (h *EnterprisesHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	list, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list enterprises")
		return
	}

	RespondData(ctx, http.StatusOK, list)
}

func (h *EnterprisesHandler) GetByNIT(ctx *gin.Context) {
	nit := ctx.Param("nit")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	e, err := h.repo.GetByNIT(cctx, nit)

	if err != nil {
		if errors.Is(err, enterprise.ErrNotFound) {
			RespondNotFound(ctx, "Enterprise not found")
			return
		}

		RespondInternal(ctx, "Could not load enterprise")
		return
	}

	RespondData(ctx, http.StatusOK, e)
}

func (h *EnterprisesHandler) Create(ctx *gin.Context) {
	var req enterprise.CreateEnterpriseRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	e, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, enterprise.ErrDuplicateNIT) {
			RespondBadRequest(ctx, "NIT already registered", nil)
			return
		}

		RespondInternal(ctx, "Could not create enterprise")
		return
	}

	RespondData(ctx, http.StatusOK, e)
}

func (h *EnterprisesHandler) Update(ctx *gin.Context) {
	nit := ctx.Param("nit")

	var req enterprise.UpdateEnterpriseRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	e, err := h.repo.Update(cctx, nit, req)

	if err != nil {
		if errors.Is(err, enterprise.ErrNotFound) {
			RespondNotFound(ctx, "Enterprise not found")
			return
		}

		RespondInternal(ctx, "Could not update enterprise")
		return
	}

	RespondData(ctx, http.StatusOK, e)
}

func (h *EnterprisesHandler) Delete(ctx *gin.Context) {
	nit := ctx.Param("nit")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, nit)

	if err != nil {
		if errors.Is(err, enterprise.ErrNotFound) {
			RespondNotFound(ctx, "Enterprise not found")
			return
		}

		RespondInternal(ctx, "Could not delete enterprise")
		return
	}

	ctx.Status(http.StatusNoContent)
}
