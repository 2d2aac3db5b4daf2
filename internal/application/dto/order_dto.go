package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
// OrderDate acepta "2006-01-02" o RFC 3339.
type CreateOrderRequest struct {
	CustomerID      string                 `json:"customer_id" validate:"required"`
	WarehouseID     string                 `json:"warehouse_id" validate:"required"`
	PaymentMethodID string                 `json:"payment_method_id" validate:"required"`
	OrderDate       string                 `json:"order_date" validate:"required"`
	Payment         *decimal.Decimal       `json:"payment" validate:"required"`
	Items           []OrderItemRequest     `json:"items" validate:"required,min=1,dive"`
	Discounts       []OrderDiscountRequest `json:"discounts" validate:"dive"`
}

// OrderItemRequest una línea: el producto (stuff_id) y al menos un identificador.
type OrderItemRequest struct {
	StuffID string `json:"stuff_id" validate:"required"`
	IMEI1   string `json:"imei_1,omitempty"`
	IMEI2   string `json:"imei_2,omitempty"`
	SN      string `json:"sn,omitempty"`
	Barcode string `json:"barcode,omitempty"`
}

// OrderDiscountRequest descuento de orden seleccionado en caja.
type OrderDiscountRequest struct {
	DiscountID string `json:"discount_id" validate:"required"`
}

// OrderResponse orden creada o consultada.
type OrderResponse struct {
	ID               string              `json:"id"`
	CustomerID       string              `json:"customer_id"`
	WarehouseID      string              `json:"warehouse_id"`
	PaymentMethodID  string              `json:"payment_method_id"`
	EmployeeID       string              `json:"employee_id"`
	OrderDate        time.Time           `json:"order_date"`
	Payment          decimal.Decimal     `json:"payment"`
	GrandTotal       decimal.Decimal     `json:"grand_total"`
	ItemDiscount     decimal.Decimal     `json:"item_discount"`
	OrderDiscount    decimal.Decimal     `json:"order_discount"`
	SubTotal         decimal.Decimal     `json:"sub_total"`
	RemainingPayment decimal.Decimal     `json:"remaining_payment"`
	DiscountIDs      []string            `json:"discount_ids"`
	Lines            []OrderLineResponse `json:"lines"`
}

// OrderLineResponse línea vendida.
type OrderLineResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	InventoryUnitID string          `json:"inventory_unit_id"`
	IMEI1           string          `json:"imei_1,omitempty"`
	IMEI2           string          `json:"imei_2,omitempty"`
	SN              string          `json:"sn,omitempty"`
	Barcode         string          `json:"barcode,omitempty"`
	Price           decimal.Decimal `json:"price"`
	ItemDiscount    decimal.Decimal `json:"item_discount"`
	OrderDiscount   decimal.Decimal `json:"order_discount"`
	LineTotal       decimal.Decimal `json:"line_total"`
}
