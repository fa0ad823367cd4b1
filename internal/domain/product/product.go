package product

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

// Price of a product in one currency.
type Price struct {
	Code  string  `json:"code"`
	Price float64 `json:"price"`
}

type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Code          string     `json:"productCode"`
	Properties    string     `json:"productProperties"`
	Prices        []Price    `json:"currencies"`
	Active        bool       `json:"active"`
	EnterpriseNIT string     `json:"enterpriseNit"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
}

type CreateProductRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=120"`
	Code       string  `json:"code" binding:"required,min=1,max=60"`
	Properties string  `json:"features" binding:"required,max=2000"`
	Prices     []Price `json:"prices" binding:"required,min=1,dive"`
	NIT        string  `json:"nit" binding:"required"`
}

type UpdateProductRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=120"`
	Properties string  `json:"features" binding:"required,max=2000"`
	Prices     []Price `json:"prices" binding:"required,min=1,dive"`
	Active     *bool   `json:"active" binding:"required"`
}
