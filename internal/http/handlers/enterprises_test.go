package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/andinalabs/cataloghub/internal/domain/enterprise"
	"github.com/andinalabs/cataloghub/internal/http/handlers"
)

type fakeEnterprisesRepo struct {
	listFn     func(ctx context.Context) ([]enterprise.Enterprise, error)
	getByNITFn func(ctx context.Context, nit string) (enterprise.Enterprise, error)
	createFn   func(ctx context.Context, req enterprise.CreateEnterpriseRequest) (enterprise.Enterprise, error)
	updateFn   func(ctx context.Context, nit string, req enterprise.UpdateEnterpriseRequest) (enterprise.Enterprise, error)
	deleteFn   func(ctx context.Context, nit string) error
}

func (f *fakeEnterprisesRepo) List(ctx context.Context) ([]enterprise.Enterprise, error) {
	return f.listFn(ctx)
}

func (f *fakeEnterprisesRepo) GetByNIT(ctx context.Context, nit string) (enterprise.Enterprise, error) {
	return f.getByNITFn(ctx, nit)
}

func (f *fakeEnterprisesRepo) Create(ctx context.Context, req enterprise.CreateEnterpriseRequest) (enterprise.Enterprise, error) {
	return f.createFn(ctx, req)
}

func (f *fakeEnterprisesRepo) Update(ctx context.Context, nit string, req enterprise.UpdateEnterpriseRequest) (enterprise.Enterprise, error) {
	return f.updateFn(ctx, nit, req)
}

func (f *fakeEnterprisesRepo) Delete(ctx context.Context, nit string) error {
	return f.deleteFn(ctx, nit)
}

func newEnterprisesRouter(repo *fakeEnterprisesRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := handlers.NewEnterprisesHandler(repo)

	r := gin.New()
	r.GET("/enterprises/v1", h.List)
	r.GET("/enterprises/v1/:nit", h.GetByNIT)
	r.POST("/enterprises/v1", h.Create)

	return r
}

func TestEnterpriseCreateDuplicateNIT(t *testing.T) {
	repo := &fakeEnterprisesRepo{
		createFn: func(ctx context.Context, req enterprise.CreateEnterpriseRequest) (enterprise.Enterprise, error) {
			return enterprise.Enterprise{}, enterprise.ErrDuplicateNIT
		},
	}

	r := newEnterprisesRouter(repo)

	body := `{"nit":"900123456","name":"Acme","address":"Calle 123","phoneNumber":"555"}`

	req := httptest.NewRequest(http.MethodPost, "/enterprises/v1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestEnterpriseGetByNITNotFound(t *testing.T) {
	repo := &fakeEnterprisesRepo{
		getByNITFn: func(ctx context.Context, nit string) (enterprise.Enterprise, error) {
			return enterprise.Enterprise{}, enterprise.ErrNotFound
		},
	}

	r := newEnterprisesRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/enterprises/v1/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestEnterpriseList(t *testing.T) {
	repo := &fakeEnterprisesRepo{
		listFn: func(ctx context.Context) ([]enterprise.Enterprise, error) {
			return []enterprise.Enterprise{{NIT: "900123456", Name: "Acme"}}, nil
		},
	}

	r := newEnterprisesRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/enterprises/v1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	if !strings.Contains(w.Body.String(), `"nit":"900123456"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
