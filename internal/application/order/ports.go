package order

import (
	"context"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con todos los repositorios atados a ella.
// Si fn retorna error la transacción se revierte completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error
}

// Receipt reúne lo necesario para imprimir el comprobante de una orden.
type Receipt struct {
	Order         *entity.Order
	Lines         []*entity.OrderLine
	Products      map[string]*entity.Product
	Customer      *entity.Customer
	Warehouse     *entity.Warehouse
	PaymentMethod *entity.PaymentMethod
	Employee      *entity.Employee
}

// ReceiptGenerator genera la representación PDF del comprobante.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, r *Receipt) ([]byte, error)
}
