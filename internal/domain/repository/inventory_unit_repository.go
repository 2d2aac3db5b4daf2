package repository

import (
	"context"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/inventory"
)

// InventoryUnitRepository define el puerto para unidades físicas (IMEI / serie).
type InventoryUnitRepository interface {
	Create(ctx context.Context, unit *entity.InventoryUnit) error
	GetByID(ctx context.Context, id string) (*entity.InventoryUnit, error)
	// FindByIdentifier busca la unidad del producto cuyo campo kind coincide con value.
	// warehouseID vacío no filtra por bodega. Devuelve (nil, nil) si no hay coincidencia.
	FindByIdentifier(ctx context.Context, kind inventory.IdentifierKind, value, productID, warehouseID string) (*entity.InventoryUnit, error)
	// ClaimFirstReady toma la unidad ready de menor ID del producto que no esté en exclude,
	// saltando filas bloqueadas por otras transacciones. (nil, nil) si no queda ninguna.
	ClaimFirstReady(ctx context.Context, productID, warehouseID string, exclude []string) (*entity.InventoryUnit, error)
	// FindFirstReady elige la misma unidad que ClaimFirstReady pero sin bloquearla.
	FindFirstReady(ctx context.Context, productID, warehouseID string, exclude []string) (*entity.InventoryUnit, error)
	// MarkSold pasa la unidad de ready a sold. false si la unidad ya no estaba ready.
	MarkSold(ctx context.Context, unitID string) (bool, error)
	CountReady(ctx context.Context, productID string) (int, error)
}
