package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

var _ repository.MasterDataRepository = (*MasterDataRepo)(nil)

// MasterDataRepo lecturas de clientes, bodegas, medios de pago y empleados.
type MasterDataRepo struct {
	q Querier
}

// NewMasterDataRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMasterDataRepository(q Querier) *MasterDataRepo {
	return &MasterDataRepo{q: q}
}

// getOne escanea una fila y traduce "sin filas" a (false, nil).
func (r *MasterDataRepo) getOne(ctx context.Context, what, query, id string, dest ...any) (bool, error) {
	if err := r.q.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, mapError(err, "get "+what)
	}
	return true, nil
}

func (r *MasterDataRepo) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	var c entity.Customer
	ok, err := r.getOne(ctx, "customer", `SELECT id, name, phone FROM customers WHERE id = $1`, id, &c.ID, &c.Name, &c.Phone)
	if !ok {
		return nil, err
	}
	return &c, nil
}

func (r *MasterDataRepo) GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	ok, err := r.getOne(ctx, "warehouse", `SELECT id, name, address FROM warehouses WHERE id = $1`, id, &w.ID, &w.Name, &w.Address)
	if !ok {
		return nil, err
	}
	return &w, nil
}

func (r *MasterDataRepo) GetPaymentMethod(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	var p entity.PaymentMethod
	ok, err := r.getOne(ctx, "payment method", `SELECT id, name FROM payment_methods WHERE id = $1`, id, &p.ID, &p.Name)
	if !ok {
		return nil, err
	}
	return &p, nil
}

func (r *MasterDataRepo) GetEmployee(ctx context.Context, id string) (*entity.Employee, error) {
	var e entity.Employee
	ok, err := r.getOne(ctx, "employee", `SELECT id, name, role FROM employees WHERE id = $1`, id, &e.ID, &e.Name, &e.Role)
	if !ok {
		return nil, err
	}
	return &e, nil
}
