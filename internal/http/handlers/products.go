package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andinalabs/cataloghub/internal/cache"
	"github.com/andinalabs/cataloghub/internal/config"
	"github.com/andinalabs/cataloghub/internal/domain/enterprise"
	"github.com/andinalabs/cataloghub/internal/domain/job"
	"github.com/andinalabs/cataloghub/internal/domain/product"
	"github.com/andinalabs/cataloghub/internal/http/middlewares"
	"github.com/andinalabs/cataloghub/internal/jobs"
)

type ProductsRepository interface {
	ListInventory(ctx context.Context) ([]product.Product, error)
	ListByEnterprise(ctx context.Context, nit string) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
	Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error)
	Delete(ctx context.Context, id string) error
}

type EnterpriseReader interface {
	GetByNIT(ctx context.Context, nit string) (enterprise.Enterprise, error)
}

type JobsCreator interface {
	Create(ctx context.Context, req job.CreateRequest) (job.Job, error)
}

type ProductsHandler struct {
	repo        ProductsRepository
	enterprises EnterpriseReader
	jobs        JobsCreator
	inventory   *cache.InventoryCache
}

func NewProductsHandler(repo ProductsRepository, enterprises EnterpriseReader, jobsRepo JobsCreator, inventory *cache.InventoryCache) *ProductsHandler {
	return &ProductsHandler{
		repo:        repo,
		enterprises: enterprises,
		jobs:        jobsRepo,
		inventory:   inventory,
	}
}

// Inventory serves the full active catalog, read-through cached.
func (h *ProductsHandler) Inventory(ctx *gin.Context) {
	h.respondInventory(ctx, "")
}

// InventoryByEnterprise serves one tenant's active products.
func (h *ProductsHandler) InventoryByEnterprise(ctx *gin.Context) {
	h.respondInventory(ctx, ctx.Param("nit"))
}

func (h *ProductsHandler) respondInventory(ctx *gin.Context, nit string) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if list, ok := h.inventory.Get(cctx, nit); ok {
		RespondJSONWithETag(ctx, http.StatusOK, gin.H{"status": http.StatusOK, "data": list})
		return
	}

	var (
		list []product.Product
		err  error
	)

	if nit == "" {
		list, err = h.repo.ListInventory(cctx)
	} else {
		list, err = h.repo.ListByEnterprise(cctx, nit)
	}

	if err != nil {
		RespondInternal(ctx, "Could not list products")
		return
	}

	h.inventory.Set(cctx, nit, list)

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{"status": http.StatusOK, "data": list})
}

func (h *ProductsHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		RespondInternal(ctx, "Could not load product")
		return
	}

	RespondData(ctx, http.StatusOK, p)
}

func (h *ProductsHandler) Create(ctx *gin.Context) {
	var req product.CreateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// products always belong to a known tenant
	_, err := h.enterprises.GetByNIT(cctx, req.NIT)

	if err != nil {
		if errors.Is(err, enterprise.ErrNotFound) {
			RespondNotFound(ctx, "Enterprise not found")
			return
		}

		RespondInternal(ctx, "Could not create product")
		return
	}

	p, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create product")
		return
	}

	h.inventory.Invalidate(cctx, req.NIT)

	RespondData(ctx, http.StatusOK, p)
}

func (h *ProductsHandler) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req product.UpdateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		RespondInternal(ctx, "Could not update product")
		return
	}

	h.inventory.Invalidate(cctx, p.EnterpriseNIT)

	RespondData(ctx, http.StatusOK, p)
}

func (h *ProductsHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		RespondInternal(ctx, "Could not delete product")
		return
	}

	if err := h.repo.Delete(cctx, id); err != nil {
		RespondInternal(ctx, "Could not delete product")
		return
	}

	h.inventory.Invalidate(cctx, p.EnterpriseNIT)

	ctx.Status(http.StatusNoContent)
}

type exportInventoryRequest struct {
	Emails []string `json:"emails" binding:"required,min=1,dive,email"`
	NIT    string   `json:"nit"`
}

// ExportInventory enqueues the report job; rendering and delivery happen in
// the worker.
func (h *ProductsHandler) ExportInventory(ctx *gin.Context) {
	var req exportInventoryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if req.NIT != "" {
		if _, err := h.enterprises.GetByNIT(cctx, req.NIT); err != nil {
			if errors.Is(err, enterprise.ErrNotFound) {
				RespondNotFound(ctx, "Enterprise not found")
				return
			}

			RespondInternal(ctx, "Could not schedule export")
			return
		}
	}

	requestedBy, _ := middlewares.EmailFromContext(ctx)

	payload, err := jobs.EncodePayload(jobs.JobInventoryExportEmail, jobs.InventoryExportEmailPayload{
		EnterpriseNIT: req.NIT,
		ToAddresses:   req.Emails,
		RequestedBy:   requestedBy,
		RequestID:     requestIDFrom(ctx),
	})

	if err != nil {
		RespondInternal(ctx, "Could not schedule export")
		return
	}

	j, err := h.jobs.Create(cctx, job.CreateRequest{
		Type:    string(jobs.JobInventoryExportEmail),
		Payload: payload,
	})

	if err != nil {
		RespondInternal(ctx, "Could not schedule export")
		return
	}

	RespondData(ctx, http.StatusAccepted, gin.H{"jobId": j.ID})
}
