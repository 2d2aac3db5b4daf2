package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento.
const (
	DiscountTypeFixed      = "fixed"      // valor monetario literal
	DiscountTypePercentage = "percentage" // porcentaje sobre la base
)

// Discount es un descuento independiente que se asigna a productos (descuento por ítem)
// o a órdenes (descuento de orden), muchos a muchos en ambos casos.
type Discount struct {
	ID         string
	EmployeeID string
	Name       string
	Type       string
	Value      decimal.Decimal
	StartsAt   *time.Time
	EndsAt     *time.Time
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InWindow indica si t cae dentro de la vigencia (límites inclusivos; nil = abierto).
func (d *Discount) InWindow(t time.Time) bool {
	if d.StartsAt != nil && t.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && t.After(*d.EndsAt) {
		return false
	}
	return true
}
