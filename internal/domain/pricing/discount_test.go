package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/pricing"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func fixed(v int64) *entity.Discount {
	return &entity.Discount{ID: "f", Type: entity.DiscountTypeFixed, Value: dec(v), Active: true}
}

func percent(v int64) *entity.Discount {
	return &entity.Discount{ID: "p", Type: entity.DiscountTypePercentage, Value: dec(v), Active: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Precio de línea
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceLine_DescuentoFijo(t *testing.T) {
	lp := pricing.Policy{}.PriceLine(dec(100_000), []*entity.Discount{fixed(10_000)})
	assert.True(t, lp.Price.Equal(dec(90_000)), "precio: %s", lp.Price)
	assert.True(t, lp.Discount.Equal(dec(10_000)))
}

func TestPriceLine_DescuentoPorcentaje(t *testing.T) {
	lp := pricing.Policy{}.PriceLine(dec(100_000), []*entity.Discount{percent(10)})
	assert.True(t, lp.Price.Equal(dec(90_000)), "precio: %s", lp.Price)
}

func TestPriceLine_ApiladoAditivo(t *testing.T) {
	// 10% de 100 000 + 5 000 fijo = 15 000, no compuesto.
	lp := pricing.Policy{}.PriceLine(dec(100_000), []*entity.Discount{percent(10), fixed(5_000)})
	assert.True(t, lp.Price.Equal(dec(85_000)), "precio: %s", lp.Price)
}

func TestPriceLine_IgnoraInactivos(t *testing.T) {
	off := fixed(10_000)
	off.Active = false
	lp := pricing.Policy{}.PriceLine(dec(100_000), []*entity.Discount{off, nil})
	assert.True(t, lp.Price.Equal(dec(100_000)))
}

func TestPriceLine_NoSeRecortaACero(t *testing.T) {
	lp := pricing.Policy{}.PriceLine(dec(1_000), []*entity.Discount{fixed(1_500)})
	assert.True(t, lp.Price.Equal(dec(-500)), "precio: %s", lp.Price)
}

func TestPolicy_VentanaDeVigencia(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	end := now.Add(-time.Hour)
	expired := fixed(10_000)
	expired.EndsAt = &end

	assert.True(t, pricing.Policy{At: now}.IsActive(expired), "sin ventana solo cuenta la bandera")
	assert.False(t, pricing.Policy{EnforceWindow: true, At: now}.IsActive(expired))

	start := now
	exact := fixed(1)
	exact.StartsAt = &start
	assert.True(t, pricing.Policy{EnforceWindow: true, At: now}.IsActive(exact), "límites inclusivos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeTotals_DescuentoDeOrden(t *testing.T) {
	p := pricing.Policy{}
	lines := []pricing.LinePrice{
		p.PriceLine(dec(100_000), []*entity.Discount{fixed(10_000)}),
		p.PriceLine(dec(100_000), []*entity.Discount{percent(10)}),
	}

	totals := p.ComputeTotals(lines, []*entity.Discount{fixed(5_000)}, dec(200_000))

	assert.True(t, totals.GrandTotal.Equal(dec(180_000)), "gran total: %s", totals.GrandTotal)
	assert.True(t, totals.ItemDiscount.Equal(dec(20_000)))
	assert.True(t, totals.OrderDiscount.Equal(dec(5_000)))
	assert.True(t, totals.SubTotal.Equal(dec(175_000)), "subtotal: %s", totals.SubTotal)
	assert.True(t, totals.RemainingPayment.Equal(dec(25_000)), "saldo: %s", totals.RemainingPayment)
}

func TestComputeTotals_PorcentajeSobreGranTotalYSaldoNegativo(t *testing.T) {
	p := pricing.Policy{}
	lines := []pricing.LinePrice{p.PriceLine(dec(50_000), nil), p.PriceLine(dec(50_000), nil)}

	totals := p.ComputeTotals(lines, []*entity.Discount{percent(20)}, dec(70_000))

	assert.True(t, totals.SubTotal.Equal(dec(80_000)))
	assert.True(t, totals.RemainingPayment.Equal(dec(-10_000)), "pago insuficiente deja saldo negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reparto del descuento de orden
// ──────────────────────────────────────────────────────────────────────────────

func line(price int64) pricing.LinePrice {
	return pricing.LinePrice{Base: dec(price), Price: dec(price)}
}

func TestAllocateOrderDiscount_Proporcional(t *testing.T) {
	shares := pricing.AllocateOrderDiscount(dec(5_000), []pricing.LinePrice{line(90_000), line(90_000)})
	assert.True(t, shares[0].Equal(dec(2_500)), "línea 1: %s", shares[0])
	assert.True(t, shares[1].Equal(dec(2_500)), "línea 2: %s", shares[1])

	shares = pricing.AllocateOrderDiscount(dec(4_000), []pricing.LinePrice{line(300_000), line(100_000)})
	assert.True(t, shares[0].Equal(dec(3_000)), "línea 1: %s", shares[0])
	assert.True(t, shares[1].Equal(dec(1_000)), "línea 2: %s", shares[1])
}

func TestAllocateOrderDiscount_SumaExactaConCentavos(t *testing.T) {
	shares := pricing.AllocateOrderDiscount(dec(100), []pricing.LinePrice{line(1), line(1), line(1)})
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	assert.True(t, sum.Equal(dec(100)), "suma: %s", sum)
	assert.True(t, shares[0].Equal(decimal.RequireFromString("33.33")), "línea 1: %s", shares[0])
	assert.True(t, shares[2].Equal(decimal.RequireFromString("33.34")), "línea 3: %s", shares[2])
}

func TestAllocateOrderDiscount_GranTotalCeroReparteIgual(t *testing.T) {
	shares := pricing.AllocateOrderDiscount(dec(10), []pricing.LinePrice{line(0), line(0)})
	assert.True(t, shares[0].Equal(dec(5)))
	assert.True(t, shares[1].Equal(dec(5)))
}

func TestAllocateOrderDiscount_SinLineas(t *testing.T) {
	assert.Empty(t, pricing.AllocateOrderDiscount(dec(10), nil))
}
