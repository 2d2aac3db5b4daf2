package postgres

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo implementación del kardex sobre PostgreSQL. Solo inserta y lee.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Append registra un movimiento.
func (r *StockLedgerRepo) Append(ctx context.Context, e *entity.StockLedgerEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_ledger (id, warehouse_id, product_id, inventory_unit_id, type, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.WarehouseID, e.ProductID, e.InventoryUnitID, e.Type, e.ReferenceID, e.CreatedAt,
	)
	return mapError(err, "insert stock ledger entry")
}

// ListByReference devuelve los movimientos generados por una orden o lote de ingreso.
func (r *StockLedgerRepo) ListByReference(ctx context.Context, referenceID string) ([]*entity.StockLedgerEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, warehouse_id, product_id, inventory_unit_id, type, reference_id, created_at
		FROM stock_ledger WHERE reference_id = $1
		ORDER BY created_at, inventory_unit_id`, referenceID)
	if err != nil {
		return nil, mapError(err, "list stock ledger")
	}
	defer rows.Close()

	var list []*entity.StockLedgerEntry
	for rows.Next() {
		var e entity.StockLedgerEntry
		if err := rows.Scan(&e.ID, &e.WarehouseID, &e.ProductID, &e.InventoryUnitID, &e.Type, &e.ReferenceID, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan stock ledger entry")
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
