package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

var _ repository.DiscountRepository = (*DiscountRepo)(nil)

const discountColumns = `d.id, d.employee_id, d.name, d.type, d.value, d.starts_at, d.ends_at, d.active, d.created_at, d.updated_at`

// DiscountRepo implementación de DiscountRepository sobre PostgreSQL.
type DiscountRepo struct {
	q Querier
}

// NewDiscountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{q: q}
}

func scanDiscount(row pgx.Row) (*entity.Discount, error) {
	var d entity.Discount
	err := row.Scan(&d.ID, &d.EmployeeID, &d.Name, &d.Type, &d.Value, &d.StartsAt, &d.EndsAt, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDiscounts(rows pgx.Rows) ([]*entity.Discount, error) {
	defer rows.Close()
	var list []*entity.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan discount")
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Create persiste un descuento.
func (r *DiscountRepo) Create(ctx context.Context, d *entity.Discount) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO discounts (id, employee_id, name, type, value, starts_at, ends_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.EmployeeID, d.Name, d.Type, d.Value, d.StartsAt, d.EndsAt, d.Active, d.CreatedAt, d.UpdatedAt,
	)
	return mapError(err, "insert discount")
}

// GetByID obtiene un descuento por ID; (nil, nil) si no existe.
func (r *DiscountRepo) GetByID(ctx context.Context, id string) (*entity.Discount, error) {
	d, err := scanDiscount(r.q.QueryRow(ctx, `SELECT `+discountColumns+` FROM discounts d WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err, "get discount")
	}
	return d, nil
}

// GetByIDs devuelve los descuentos existentes en el orden en que se pidieron.
func (r *DiscountRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Discount, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+discountColumns+` FROM discounts d
		WHERE d.id = ANY($1)
		ORDER BY array_position($1::text[], d.id)`, ids)
	if err != nil {
		return nil, mapError(err, "list discounts")
	}
	return collectDiscounts(rows)
}

// Update reemplaza los campos editables del descuento.
func (r *DiscountRepo) Update(ctx context.Context, d *entity.Discount) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE discounts
		SET name = $2, type = $3, value = $4, starts_at = $5, ends_at = $6, active = $7, updated_at = $8
		WHERE id = $1`,
		d.ID, d.Name, d.Type, d.Value, d.StartsAt, d.EndsAt, d.Active, d.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "update discount")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("descuento no encontrado")
	}
	return nil
}

// ListByProduct devuelve los descuentos por ítem asignados al producto.
func (r *DiscountRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Discount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+discountColumns+`
		FROM discounts d
		JOIN item_discounts i ON i.discount_id = d.id
		WHERE i.product_id = $1
		ORDER BY d.created_at, d.id`, productID)
	if err != nil {
		return nil, mapError(err, "list product discounts")
	}
	return collectDiscounts(rows)
}

// AssignToProduct asigna el descuento al producto. Repetir la asignación no falla.
func (r *DiscountRepo) AssignToProduct(ctx context.Context, productID, discountID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO item_discounts (product_id, discount_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, productID, discountID)
	return mapError(err, "assign discount")
}
