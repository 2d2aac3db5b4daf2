package repository

import (
	"context"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes, sus líneas y los
// descuentos de orden asignados.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	AddDiscounts(ctx context.Context, orderID string, discountIDs []string) error
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
}
