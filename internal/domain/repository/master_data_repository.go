package repository

import (
	"context"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
)

// MasterDataRepository expone las consultas de solo lectura sobre datos maestros que
// necesita la caja. Cada Get devuelve (nil, nil) si el registro no existe.
type MasterDataRepository interface {
	GetCustomer(ctx context.Context, id string) (*entity.Customer, error)
	GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error)
	GetPaymentMethod(ctx context.Context, id string) (*entity.PaymentMethod, error)
	GetEmployee(ctx context.Context, id string) (*entity.Employee, error)
}
