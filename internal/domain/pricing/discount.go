// Package pricing calcula precios de línea y totales de la orden apilando descuentos.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Policy decide qué descuentos cuentan como activos.
// Con EnforceWindow en false solo importa la bandera active.
type Policy struct {
	EnforceWindow bool
	At            time.Time
}

// IsActive reporta si el descuento aplica bajo la política.
func (p Policy) IsActive(d *entity.Discount) bool {
	if d == nil || !d.Active {
		return false
	}
	if p.EnforceWindow && !d.InWindow(p.At) {
		return false
	}
	return true
}

// Contribution es lo que un descuento resta de base: fixed aporta su valor tal cual,
// percentage aporta base * valor / 100. Un tipo desconocido no aporta.
func Contribution(base decimal.Decimal, d *entity.Discount) decimal.Decimal {
	switch d.Type {
	case entity.DiscountTypeFixed:
		return d.Value
	case entity.DiscountTypePercentage:
		return base.Mul(d.Value).Div(hundred).Round(2)
	default:
		return decimal.Zero
	}
}

// TotalDiscount suma las contribuciones de todos los descuentos activos (apilado aditivo).
func (p Policy) TotalDiscount(base decimal.Decimal, discounts []*entity.Discount) decimal.Decimal {
	total := decimal.Zero
	for _, d := range discounts {
		if !p.IsActive(d) {
			continue
		}
		total = total.Add(Contribution(base, d))
	}
	return total
}

// LinePrice es el precio de una línea después de descuentos de ítem.
type LinePrice struct {
	Base     decimal.Decimal
	Discount decimal.Decimal
	Price    decimal.Decimal
}

// PriceLine aplica los descuentos de ítem al precio base. El resultado no se recorta a
// cero: un descuento mayor que el precio deja la línea en negativo.
func (p Policy) PriceLine(base decimal.Decimal, itemDiscounts []*entity.Discount) LinePrice {
	discount := p.TotalDiscount(base, itemDiscounts)
	return LinePrice{
		Base:     base,
		Discount: discount,
		Price:    base.Sub(discount),
	}
}

// Totals son las cifras finales de la orden.
type Totals struct {
	GrandTotal       decimal.Decimal
	ItemDiscount     decimal.Decimal
	OrderDiscount    decimal.Decimal
	SubTotal         decimal.Decimal
	Payment          decimal.Decimal
	RemainingPayment decimal.Decimal
}

// ComputeTotals suma las líneas, aplica los descuentos de orden sobre el gran total y
// calcula el saldo: remaining_payment = payment - sub_total (positivo es cambio a
// devolver, negativo es saldo pendiente).
func (p Policy) ComputeTotals(lines []LinePrice, orderDiscounts []*entity.Discount, payment decimal.Decimal) Totals {
	grand := decimal.Zero
	itemDiscount := decimal.Zero
	for _, l := range lines {
		grand = grand.Add(l.Price)
		itemDiscount = itemDiscount.Add(l.Discount)
	}
	orderDiscount := p.TotalDiscount(grand, orderDiscounts)
	sub := grand.Sub(orderDiscount)

	return Totals{
		GrandTotal:       grand,
		ItemDiscount:     itemDiscount,
		OrderDiscount:    orderDiscount,
		SubTotal:         sub,
		Payment:          payment,
		RemainingPayment: payment.Sub(sub),
	}
}

// AllocateOrderDiscount reparte el descuento de orden entre las líneas en proporción al
// precio de cada una (a centavos). La última línea recibe el resto, así la suma es exacta.
// Si el gran total no es positivo se reparte por partes iguales.
func AllocateOrderDiscount(orderDiscount decimal.Decimal, lines []LinePrice) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(lines))
	if len(lines) == 0 {
		return shares
	}
	grand := decimal.Zero
	for _, l := range lines {
		grand = grand.Add(l.Price)
	}
	n := decimal.NewFromInt(int64(len(lines)))

	allocated := decimal.Zero
	for i, l := range lines[:len(lines)-1] {
		if grand.IsPositive() {
			shares[i] = orderDiscount.Mul(l.Price).Div(grand).Round(2)
		} else {
			shares[i] = orderDiscount.Div(n).Round(2)
		}
		allocated = allocated.Add(shares[i])
	}
	shares[len(lines)-1] = orderDiscount.Sub(allocated)
	return shares
}
