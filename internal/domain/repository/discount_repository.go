package repository

import (
	"context"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
)

// DiscountRepository define el puerto de persistencia para descuentos y sus asignaciones.
type DiscountRepository interface {
	Create(ctx context.Context, d *entity.Discount) error
	GetByID(ctx context.Context, id string) (*entity.Discount, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Discount, error)
	Update(ctx context.Context, d *entity.Discount) error
	// ListByProduct devuelve todos los descuentos asignados al producto (activos o no).
	ListByProduct(ctx context.Context, productID string) ([]*entity.Discount, error)
	AssignToProduct(ctx context.Context, productID, discountID string) error
}
