package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/inventory"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

var _ repository.InventoryUnitRepository = (*InventoryUnitRepo)(nil)

const unitColumns = `id, product_id, warehouse_id, COALESCE(imei_1, ''), COALESCE(imei_2, ''), COALESCE(serial_number, ''), status, created_at, updated_at`

// InventoryUnitRepo implementación de InventoryUnitRepository sobre PostgreSQL.
type InventoryUnitRepo struct {
	q Querier
}

// NewInventoryUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryUnitRepository(q Querier) *InventoryUnitRepo {
	return &InventoryUnitRepo{q: q}
}

func scanUnit(row pgx.Row) (*entity.InventoryUnit, error) {
	var u entity.InventoryUnit
	err := row.Scan(&u.ID, &u.ProductID, &u.WarehouseID, &u.IMEI1, &u.IMEI2, &u.SerialNumber, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// identifierColumn columna que guarda cada tipo de identificador de unidad.
func identifierColumn(kind inventory.IdentifierKind) (string, bool) {
	switch kind {
	case inventory.KindIMEI1:
		return "imei_1", true
	case inventory.KindIMEI2:
		return "imei_2", true
	case inventory.KindSerial:
		return "serial_number", true
	}
	return "", false
}

// Create persiste una unidad. Identificadores vacíos se guardan como NULL.
func (r *InventoryUnitRepo) Create(ctx context.Context, u *entity.InventoryUnit) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_units (id, product_id, warehouse_id, imei_1, imei_2, serial_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)`,
		u.ID, u.ProductID, u.WarehouseID, u.IMEI1, u.IMEI2, u.SerialNumber, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	return mapError(err, "insert inventory unit")
}

// GetByID obtiene una unidad por ID.
func (r *InventoryUnitRepo) GetByID(ctx context.Context, id string) (*entity.InventoryUnit, error) {
	u, err := scanUnit(r.q.QueryRow(ctx, `SELECT `+unitColumns+` FROM inventory_units WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "get inventory unit")
	}
	return u, nil
}

// FindByIdentifier busca por IMEI 1, IMEI 2 o serie dentro del producto.
func (r *InventoryUnitRepo) FindByIdentifier(ctx context.Context, kind inventory.IdentifierKind, value, productID, warehouseID string) (*entity.InventoryUnit, error) {
	col, ok := identifierColumn(kind)
	if !ok {
		return nil, errors.Errorf("tipo de identificador no indexado: %s", kind)
	}
	query := `SELECT ` + unitColumns + ` FROM inventory_units
		WHERE ` + col + ` = $1 AND product_id = $2 AND ($3::text = '' OR warehouse_id = $3)`
	u, err := scanUnit(r.q.QueryRow(ctx, query, value, productID, warehouseID))
	if err != nil {
		return nil, mapError(err, "find inventory unit")
	}
	return u, nil
}

// ClaimFirstReady bloquea la unidad ready de menor ID; las filas ya bloqueadas por otras
// cajas se saltan en lugar de esperar.
func (r *InventoryUnitRepo) ClaimFirstReady(ctx context.Context, productID, warehouseID string, exclude []string) (*entity.InventoryUnit, error) {
	return r.firstReady(ctx, productID, warehouseID, exclude, "FOR UPDATE SKIP LOCKED")
}

// FindFirstReady es ClaimFirstReady sin bloqueo, para consultas.
func (r *InventoryUnitRepo) FindFirstReady(ctx context.Context, productID, warehouseID string, exclude []string) (*entity.InventoryUnit, error) {
	return r.firstReady(ctx, productID, warehouseID, exclude, "")
}

func (r *InventoryUnitRepo) firstReady(ctx context.Context, productID, warehouseID string, exclude []string, lockClause string) (*entity.InventoryUnit, error) {
	if exclude == nil {
		exclude = []string{}
	}
	u, err := scanUnit(r.q.QueryRow(ctx, `
		SELECT `+unitColumns+` FROM inventory_units
		WHERE product_id = $1 AND warehouse_id = $2 AND status = 'ready' AND id <> ALL($3)
		ORDER BY id
		LIMIT 1 `+lockClause,
		productID, warehouseID, exclude,
	))
	if err != nil {
		return nil, mapError(err, "first ready inventory unit")
	}
	return u, nil
}

// MarkSold es un compare-and-set ready -> sold.
func (r *InventoryUnitRepo) MarkSold(ctx context.Context, unitID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory_units SET status = 'sold', updated_at = now()
		WHERE id = $1 AND status = 'ready'`, unitID)
	if err != nil {
		return false, mapError(err, "mark unit sold")
	}
	return tag.RowsAffected() == 1, nil
}

// CountReady cuenta las unidades ready del producto en todas las bodegas.
func (r *InventoryUnitRepo) CountReady(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventory_units WHERE product_id = $1 AND status = 'ready'`, productID).Scan(&n)
	if err != nil {
		return 0, mapError(err, "count ready units")
	}
	return n, nil
}
