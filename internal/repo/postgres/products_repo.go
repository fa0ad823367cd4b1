package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/andinalabs/cataloghub/internal/domain/product"
	"github.com/andinalabs/cataloghub/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewProductsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ProductsRepo {
	return &ProductsRepo{pool: pool, prom: prom}
}

func (r *ProductsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const productColumns = `id, name, product_code, product_properties, prices, active, enterprise_nit, created_at, updated_at, deleted_at`

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	var prices []byte

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Code,
		&p.Properties,
		&prices,
		&p.Active,
		&p.EnterpriseNIT,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}
		return product.Product{}, err
	}

	if len(prices) > 0 {
		if err := json.Unmarshal(prices, &p.Prices); err != nil {
			return product.Product{}, err
		}
	}

	return p, nil
}

func (r *ProductsRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]product.Product, error) {
	var out []product.Product

	err := r.observe(op, func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]product.Product, 0)

		for rows.Next() {
			p, err := scanProduct(rows)

			if err != nil {
				return err
			}

			out = append(out, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// ListInventory returns every product that is not soft-deleted.
func (r *ProductsRepo) ListInventory(ctx context.Context) ([]product.Product, error) {
	return r.list(ctx, "products.list_inventory",
		`SELECT `+productColumns+` FROM products WHERE deleted_at IS NULL ORDER BY name ASC, id ASC`)
}

// ListByEnterprise returns a single tenant's inventory.
func (r *ProductsRepo) ListByEnterprise(ctx context.Context, nit string) ([]product.Product, error) {
	return r.list(ctx, "products.list_by_enterprise",
		`SELECT `+productColumns+` FROM products WHERE enterprise_nit = $1 AND deleted_at IS NULL ORDER BY name ASC, id ASC`, nit)
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	var p product.Product
	var err error

	err = r.observe("products.get_by_id", func() error {
		p, err = scanProduct(r.pool.QueryRow(ctx,
			`SELECT `+productColumns+` FROM products WHERE id = $1 AND deleted_at IS NULL`, id))
		return err
	})

	return p, err
}

func (r *ProductsRepo) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	now := time.Now().UTC()

	p := product.Product{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Code:          req.Code,
		Properties:    req.Properties,
		Prices:        req.Prices,
		Active:        true,
		EnterpriseNIT: req.NIT,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	prices, err := json.Marshal(p.Prices)

	if err != nil {
		return product.Product{}, err
	}

	err = r.observe("products.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO products (id, name, product_code, product_properties, prices, active, enterprise_nit, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			p.ID, p.Name, p.Code, p.Properties, prices, p.Active, p.EnterpriseNIT, p.CreatedAt, p.UpdatedAt,
		)
		return err
	})

	if err != nil {
		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	prices, err := json.Marshal(req.Prices)

	if err != nil {
		return product.Product{}, err
	}

	active := true

	if req.Active != nil {
		active = *req.Active
	}

	var p product.Product

	err = r.observe("products.update", func() error {
		p, err = scanProduct(r.pool.QueryRow(ctx,
			`UPDATE products
			 SET name = $2, product_properties = $3, prices = $4, active = $5, updated_at = NOW()
			 WHERE id = $1 AND deleted_at IS NULL
			 RETURNING `+productColumns,
			id, req.Name, req.Properties, prices, active,
		))
		return err
	})

	return p, err
}

// Delete soft-deletes: the row stays for order history, the inventory
// queries stop seeing it.
func (r *ProductsRepo) Delete(ctx context.Context, id string) error {
	return r.observe("products.delete", func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE products SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return product.ErrNotFound
		}

		return nil
	})
}
