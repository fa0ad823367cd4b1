package enterprise

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("enterprise not found")
	ErrDuplicateNIT = errors.New("enterprise already registered")
)

// Enterprise is a tenant of the catalog, identified by its NIT (tax id).
type Enterprise struct {
	ID          string    `json:"id"`
	NIT         string    `json:"nit"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateEnterpriseRequest struct {
	NIT         string `json:"nit" binding:"required,min=3,max=40"`
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Address     string `json:"address" binding:"required,max=200"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=30"`
}

type UpdateEnterpriseRequest struct {
	NIT         string `json:"nit" binding:"required,min=3,max=40"`
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Address     string `json:"address" binding:"required,max=200"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=30"`
}
