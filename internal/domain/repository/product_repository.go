package repository

import (
	"context"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE) hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	SetStock(ctx context.Context, productID string, stock int) error
}
