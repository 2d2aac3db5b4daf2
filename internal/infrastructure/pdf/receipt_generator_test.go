package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasitemo/store-management-sub000/internal/application/order"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"999", "$999"},
		{"175000", "$175.000"},
		{"1000000", "$1.000.000"},
		{"1234.5", "$1.234,50"},
		{"90000.05", "$90.000,05"},
		{"-25000", "-$25.000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestLineIdentifier(t *testing.T) {
	assert.Equal(t, "IMEI 3500", lineIdentifier(&entity.OrderLine{IMEI1: "3500", SerialNumber: "x"}))
	assert.Equal(t, "SN abc", lineIdentifier(&entity.OrderLine{SerialNumber: "abc"}))
	assert.Equal(t, "EAN 770", lineIdentifier(&entity.OrderLine{Barcode: "770"}))
	assert.Equal(t, "-", lineIdentifier(&entity.OrderLine{}))
}

func TestGenerateReceiptPDF(t *testing.T) {
	o := &entity.Order{
		ID:               "o-1",
		CustomerID:       "c-1",
		WarehouseID:      "w-1",
		PaymentMethodID:  "pm-1",
		EmployeeID:       "e-1",
		OrderDate:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Payment:          decimal.NewFromInt(150000),
		GrandTotal:       decimal.NewFromInt(180000),
		OrderDiscount:    decimal.NewFromInt(5000),
		SubTotal:         decimal.NewFromInt(175000),
		RemainingPayment: decimal.NewFromInt(-25000),
	}
	r := &order.Receipt{
		Order: o,
		Lines: []*entity.OrderLine{{
			ID: "l-1", OrderID: "o-1", ProductID: "p-1", InventoryUnitID: "u-1", IMEI1: "3500",
			Price: decimal.NewFromInt(200000), ItemDiscount: decimal.NewFromInt(20000), LineTotal: decimal.NewFromInt(180000),
		}},
		Products:  map[string]*entity.Product{"p-1": {ID: "p-1", Name: "Teléfono", Variant: "128GB"}},
		Customer:  &entity.Customer{ID: "c-1", Name: "Ana"},
		Warehouse: &entity.Warehouse{ID: "w-1", Name: "Central"},
	}

	out, err := NewReceiptGenerator("Tienda").GenerateReceiptPDF(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceiptPDF_SinOrden(t *testing.T) {
	_, err := NewReceiptGenerator("").GenerateReceiptPDF(context.Background(), &order.Receipt{})
	assert.Error(t, err)
}
