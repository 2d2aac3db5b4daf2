package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera de la orden.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, customer_id, warehouse_id, payment_method_id, employee_id, order_date,
			payment, grand_total, order_discount, sub_total, remaining_payment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, o.CustomerID, o.WarehouseID, o.PaymentMethodID, o.EmployeeID, o.OrderDate,
		o.Payment, o.GrandTotal, o.OrderDiscount, o.SubTotal, o.RemainingPayment, o.CreatedAt,
	)
	return mapError(err, "insert order")
}

// AddDiscounts registra los descuentos de orden aplicados.
func (r *OrderRepo) AddDiscounts(ctx context.Context, orderID string, discountIDs []string) error {
	if len(discountIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_discounts (order_id, discount_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT DO NOTHING`, orderID, discountIDs)
	return mapError(err, "insert order discounts")
}

// CreateLine inserta una línea. Una unidad ya vendida choca con order_lines_inventory_unit_id_key.
func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_lines (id, order_id, product_id, warehouse_id, inventory_unit_id,
			imei_1, imei_2, serial_number, barcode, price, item_discount, order_discount, line_total)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12, $13)`,
		l.ID, l.OrderID, l.ProductID, l.WarehouseID, l.InventoryUnitID,
		l.IMEI1, l.IMEI2, l.SerialNumber, l.Barcode, l.Price, l.ItemDiscount, l.OrderDiscount, l.LineTotal,
	)
	return mapError(err, "insert order line")
}

// GetByID obtiene la cabecera con los IDs de descuentos de orden; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, `
		SELECT o.id, o.customer_id, o.warehouse_id, o.payment_method_id, o.employee_id, o.order_date,
			o.payment, o.grand_total, o.order_discount, o.sub_total, o.remaining_payment, o.created_at,
			COALESCE((SELECT array_agg(od.discount_id ORDER BY od.discount_id) FROM order_discounts od WHERE od.order_id = o.id), '{}')
		FROM orders o WHERE o.id = $1`, id,
	).Scan(
		&o.ID, &o.CustomerID, &o.WarehouseID, &o.PaymentMethodID, &o.EmployeeID, &o.OrderDate,
		&o.Payment, &o.GrandTotal, &o.OrderDiscount, &o.SubTotal, &o.RemainingPayment, &o.CreatedAt,
		&o.DiscountIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err, "get order")
	}
	if len(o.DiscountIDs) == 0 {
		o.DiscountIDs = nil
	}
	return &o, nil
}

// ListLines devuelve las líneas en el orden en que se consumieron las unidades.
func (r *OrderRepo) ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, warehouse_id, inventory_unit_id,
			COALESCE(imei_1, ''), COALESCE(imei_2, ''), COALESCE(serial_number, ''), COALESCE(barcode, ''),
			price, item_discount, order_discount, line_total
		FROM order_lines WHERE order_id = $1
		ORDER BY inventory_unit_id`, orderID)
	if err != nil {
		return nil, mapError(err, "list order lines")
	}
	defer rows.Close()

	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.ProductID, &l.WarehouseID, &l.InventoryUnitID,
			&l.IMEI1, &l.IMEI2, &l.SerialNumber, &l.Barcode,
			&l.Price, &l.ItemDiscount, &l.OrderDiscount, &l.LineTotal,
		); err != nil {
			return nil, errors.Wrap(err, "scan order line")
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
