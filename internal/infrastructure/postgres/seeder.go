package postgres

import (
	"context"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
)

// Seeder carga datos maestros y catálogo. Lo usan cmd/seed y las pruebas de integración;
// el servicio no escribe estas tablas.
type Seeder struct {
	q Querier
}

// NewSeeder construye el cargador. Pasar pool o tx (Querier).
func NewSeeder(q Querier) *Seeder {
	return &Seeder{q: q}
}

func (s *Seeder) UpsertCustomer(ctx context.Context, c entity.Customer) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO customers (id, name, phone) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone`,
		c.ID, c.Name, c.Phone)
	return mapError(err, "upsert customer")
}

func (s *Seeder) UpsertWarehouse(ctx context.Context, w entity.Warehouse) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO warehouses (id, name, address) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address`,
		w.ID, w.Name, w.Address)
	return mapError(err, "upsert warehouse")
}

func (s *Seeder) UpsertPaymentMethod(ctx context.Context, p entity.PaymentMethod) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO payment_methods (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		p.ID, p.Name)
	return mapError(err, "upsert payment method")
}

func (s *Seeder) UpsertEmployee(ctx context.Context, e entity.Employee) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO employees (id, name, role) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role`,
		e.ID, e.Name, e.Role)
	return mapError(err, "upsert employee")
}

// UpsertProduct crea o actualiza el producto. El stock no se toca: lo fija el ingreso de unidades.
func (s *Seeder) UpsertProduct(ctx context.Context, p entity.Product) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO products (id, name, variant, price, has_serial, barcode)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, variant = EXCLUDED.variant, price = EXCLUDED.price,
			has_serial = EXCLUDED.has_serial, barcode = EXCLUDED.barcode, updated_at = now()`,
		p.ID, p.Name, p.Variant, p.Price, p.HasSerial, p.Barcode)
	return mapError(err, "upsert product")
}
