package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDiscountRequest body para POST /api/discounts.
type CreateDiscountRequest struct {
	Name     string           `json:"name" validate:"required,max=120"`
	Type     string           `json:"type" validate:"required,oneof=fixed percentage"`
	Value    *decimal.Decimal `json:"value" validate:"required"`
	StartsAt *time.Time       `json:"starts_at,omitempty"`
	EndsAt   *time.Time       `json:"ends_at,omitempty"`
	Active   *bool            `json:"active,omitempty"`
}

// UpdateDiscountRequest body para PATCH /api/discounts/:id. Solo estos campos son
// modificables; un campo desconocido en el JSON se rechaza con 400.
type UpdateDiscountRequest struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,max=120"`
	Type     *string          `json:"type,omitempty" validate:"omitempty,oneof=fixed percentage"`
	Value    *decimal.Decimal `json:"value,omitempty"`
	StartsAt *time.Time       `json:"starts_at,omitempty"`
	EndsAt   *time.Time       `json:"ends_at,omitempty"`
	Active   *bool            `json:"active,omitempty"`
}

// IsEmpty indica que el PATCH no trae ningún campo.
func (r UpdateDiscountRequest) IsEmpty() bool {
	return r.Name == nil && r.Type == nil && r.Value == nil && r.StartsAt == nil && r.EndsAt == nil && r.Active == nil
}

// AssignDiscountRequest body para POST /api/discounts/:id/products.
type AssignDiscountRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// DiscountResponse descuento en respuestas.
type DiscountResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	StartsAt   *time.Time      `json:"starts_at,omitempty"`
	EndsAt     *time.Time      `json:"ends_at,omitempty"`
	Active     bool            `json:"active"`
}
