package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/andinalabs/cataloghub/internal/domain/enterprise"
	"github.com/andinalabs/cataloghub/internal/domain/job"
	"github.com/andinalabs/cataloghub/internal/domain/product"
	"github.com/andinalabs/cataloghub/internal/http/handlers"
	"github.com/andinalabs/cataloghub/internal/jobs"
)

type fakeProductsRepo struct {
	listInventoryFn    func(ctx context.Context) ([]product.Product, error)
	listByEnterpriseFn func(ctx context.Context, nit string) ([]product.Product, error)
	getByIDFn          func(ctx context.Context, id string) (product.Product, error)
	createFn           func(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	updateFn           func(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error)
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeProductsRepo) ListInventory(ctx context.Context) ([]product.Product, error) {
	return f.listInventoryFn(ctx)
}

func (f *fakeProductsRepo) ListByEnterprise(ctx context.Context, nit string) ([]product.Product, error) {
	return f.listByEnterpriseFn(ctx, nit)
}

func (f *fakeProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeProductsRepo) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	return f.createFn(ctx, req)
}

func (f *fakeProductsRepo) Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeProductsRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeEnterpriseReader struct {
	getByNITFn func(ctx context.Context, nit string) (enterprise.Enterprise, error)
}

func (f *fakeEnterpriseReader) GetByNIT(ctx context.Context, nit string) (enterprise.Enterprise, error) {
	return f.getByNITFn(ctx, nit)
}

type fakeJobsCreator struct {
	createFn func(ctx context.Context, req job.CreateRequest) (job.Job, error)
}

func (f *fakeJobsCreator) Create(ctx context.Context, req job.CreateRequest) (job.Job, error) {
	return f.createFn(ctx, req)
}

func newProductsRouter(repo *fakeProductsRepo, ents *fakeEnterpriseReader, jc *fakeJobsCreator) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := handlers.NewProductsHandler(repo, ents, jc, nil)

	r := gin.New()
	r.GET("/products/v1/products", h.Inventory)
	r.GET("/products/v1/products/:id", h.GetByID)
	r.GET("/products/v1/enterprise/:nit", h.InventoryByEnterprise)
	r.POST("/products/v1", h.Create)
	r.POST("/products/v1/export", h.ExportInventory)

	return r
}

func TestInventoryListAndETag(t *testing.T) {
	repo := &fakeProductsRepo{
		listInventoryFn: func(ctx context.Context) ([]product.Product, error) {
			return []product.Product{{ID: "p1", Name: "Widget", Code: "W-1"}}, nil
		},
	}

	r := newProductsRouter(repo, nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/v1/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	etag := w.Header().Get("ETag")

	if etag == "" {
		t.Fatal("expected an ETag header")
	}

	var resp struct {
		Status int               `json:"status"`
		Data   []product.Product `json:"data"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(resp.Data) != 1 || resp.Data[0].ID != "p1" {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}

	// conditional re-fetch
	req := httptest.NewRequest(http.MethodGet, "/products/v1/products", nil)
	req.Header.Set("If-None-Match", etag)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotModified {
		t.Fatalf("conditional status = %d, want 304", w.Code)
	}
}

func TestCreateProductUnknownEnterprise(t *testing.T) {
	ents := &fakeEnterpriseReader{
		getByNITFn: func(ctx context.Context, nit string) (enterprise.Enterprise, error) {
			return enterprise.Enterprise{}, enterprise.ErrNotFound
		},
	}

	r := newProductsRouter(&fakeProductsRepo{}, ents, nil)

	body := `{"name":"Widget","code":"W-1","features":"blue","prices":[{"code":"USD","price":10}],"nit":"missing"}`

	req := httptest.NewRequest(http.MethodPost, "/products/v1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCreateProductValidationDetails(t *testing.T) {
	r := newProductsRouter(&fakeProductsRepo{}, &fakeEnterpriseReader{}, nil)

	// prices missing entirely
	body := `{"name":"Widget","code":"W-1","features":"blue","nit":"900123456"}`

	req := httptest.NewRequest(http.MethodPost, "/products/v1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	if !strings.Contains(w.Body.String(), `"field":"prices"`) {
		t.Fatalf("expected a prices field error, got %s", w.Body.String())
	}
}

func TestExportInventoryEnqueuesJob(t *testing.T) {
	var created *job.CreateRequest

	jc := &fakeJobsCreator{
		createFn: func(ctx context.Context, req job.CreateRequest) (job.Job, error) {
			created = &req
			return job.New(req), nil
		},
	}

	ents := &fakeEnterpriseReader{
		getByNITFn: func(ctx context.Context, nit string) (enterprise.Enterprise, error) {
			return enterprise.Enterprise{NIT: nit}, nil
		},
	}

	r := newProductsRouter(&fakeProductsRepo{}, ents, jc)

	body := `{"emails":["ops@example.com"],"nit":"900123456"}`

	req := httptest.NewRequest(http.MethodPost, "/products/v1/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	if created == nil {
		t.Fatal("expected a job to be enqueued")
	}

	if created.Type != string(jobs.JobInventoryExportEmail) {
		t.Fatalf("job type = %q", created.Type)
	}

	decoded, err := jobs.DecodePayload(jobs.JobInventoryExportEmail, created.Payload)

	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}

	payload := decoded.(jobs.InventoryExportEmailPayload)

	if payload.EnterpriseNIT != "900123456" || len(payload.ToAddresses) != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestExportInventoryRejectsBadRecipients(t *testing.T) {
	r := newProductsRouter(&fakeProductsRepo{}, &fakeEnterpriseReader{}, &fakeJobsCreator{})

	body := `{"emails":["not-an-email"]}`

	req := httptest.NewRequest(http.MethodPost, "/products/v1/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
