package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/andinalabs/cataloghub/internal/domain/enterprise"
	"github.com/andinalabs/cataloghub/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnterprisesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewEnterprisesRepo(pool *pgxpool.Pool, prom *observability.Prom) *EnterprisesRepo {
	return &EnterprisesRepo{pool: pool, prom: prom}
}

func (r *EnterprisesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const enterpriseColumns = `id, nit, name, address, phone_number, created_at, updated_at`

func scanEnterprise(row pgx.Row) (enterprise.Enterprise, error) {
	var e enterprise.Enterprise

	err := row.Scan(&e.ID, &e.NIT, &e.Name, &e.Address, &e.PhoneNumber, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return enterprise.Enterprise{}, enterprise.ErrNotFound
		}
		return enterprise.Enterprise{}, err
	}

	return e, nil
}

func (r *EnterprisesRepo) List(ctx context.Context) ([]enterprise.Enterprise, error) {
	var out []enterprise.Enterprise

	err := r.observe("enterprises.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+enterpriseColumns+` FROM enterprises ORDER BY name ASC, id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]enterprise.Enterprise, 0)

		for rows.Next() {
			e, err := scanEnterprise(rows)

			if err != nil {
				return err
			}

			out = append(out, e)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *EnterprisesRepo) GetByNIT(ctx context.Context, nit string) (enterprise.Enterprise, error) {
	var e enterprise.Enterprise
	var err error

	err = r.observe("enterprises.get_by_nit", func() error {
		e, err = scanEnterprise(r.pool.QueryRow(ctx,
			`SELECT `+enterpriseColumns+` FROM enterprises WHERE nit = $1`, nit))
		return err
	})

	return e, err
}

func (r *EnterprisesRepo) Create(ctx context.Context, req enterprise.CreateEnterpriseRequest) (enterprise.Enterprise, error) {
	now := time.Now().UTC()

	e := enterprise.Enterprise{
		ID:          uuid.NewString(),
		NIT:         req.NIT,
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.observe("enterprises.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO enterprises (id, nit, name, address, phone_number, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			e.ID, e.NIT, e.Name, e.Address, e.PhoneNumber, e.CreatedAt, e.UpdatedAt,
		)

		if IsUniqueViolation(err) {
			return enterprise.ErrDuplicateNIT
		}

		return err
	})

	if err != nil {
		return enterprise.Enterprise{}, err
	}

	return e, nil
}

func (r *EnterprisesRepo) Update(ctx context.Context, nit string, req enterprise.UpdateEnterpriseRequest) (enterprise.Enterprise, error) {
	var e enterprise.Enterprise
	var err error

	err = r.observe("enterprises.update", func() error {
		e, err = scanEnterprise(r.pool.QueryRow(ctx,
			`UPDATE enterprises
			 SET nit = $2, name = $3, address = $4, phone_number = $5, updated_at = NOW()
			 WHERE nit = $1
			 RETURNING `+enterpriseColumns,
			nit, req.NIT, req.Name, req.Address, req.PhoneNumber,
		))
		return err
	})

	return e, err
}

func (r *EnterprisesRepo) Delete(ctx context.Context, nit string) error {
	return r.observe("enterprises.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM enterprises WHERE nit = $1`, nit)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return enterprise.ErrNotFound
		}

		return nil
	})
}
