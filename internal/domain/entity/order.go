package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa la cabecera de una venta.
// RemainingPayment = Payment - SubTotal: positivo es vuelto, negativo es saldo pendiente.
type Order struct {
	ID               string
	CustomerID       string
	WarehouseID      string
	PaymentMethodID  string
	EmployeeID       string
	OrderDate        time.Time
	Payment          decimal.Decimal
	GrandTotal       decimal.Decimal // suma de líneas después de descuentos por ítem
	OrderDiscount    decimal.Decimal
	SubTotal         decimal.Decimal
	RemainingPayment decimal.Decimal
	DiscountIDs      []string // descuentos de orden aplicados
	CreatedAt        time.Time
}

// OrderLine representa una línea vendida: una unidad física con los identificadores usados
// en caja y los descuentos aplicados.
type OrderLine struct {
	ID              string
	OrderID         string
	ProductID       string
	WarehouseID     string // bodega de la que sale la unidad
	InventoryUnitID string
	IMEI1           string
	IMEI2           string
	SerialNumber    string
	Barcode         string
	Price           decimal.Decimal // precio base del producto
	ItemDiscount    decimal.Decimal // suma de descuentos por ítem
	OrderDiscount   decimal.Decimal // parte del descuento de orden que corresponde a la línea
	LineTotal       decimal.Decimal // Price - ItemDiscount
}
