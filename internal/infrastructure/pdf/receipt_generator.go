// Package pdf genera el comprobante de venta imprimible de una orden.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bodega + dirección  │  N° Orden + Fecha            │
//	│  CLIENTE / CAJERO / MEDIO DE PAGO                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Identificador | Precio | Desc. | Total   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Desc. orden / A pagar / Pago / Vuelto     │
//	│  FOOTER: QR con el ID de la orden                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/wasitemo/store-management-sub000/internal/application/order"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
)

var _ order.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa order.ReceiptGenerator con Maroto v2.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator construye el generador. storeName va como autor del documento.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	return &ReceiptGenerator{storeName: storeName}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, r *order.Receipt) ([]byte, error) {
	if r == nil || r.Order == nil {
		return nil, errors.New("pdf: comprobante sin orden")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta "+r.Order.ID, true).
		WithAuthor(nonEmpty(g.storeName, "Tienda"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(partiesRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(r)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r.Order))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(r.Order))

	doc, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "pdf: generar documento")
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *order.Receipt) core.Row {
	name, address := "Bodega "+r.Order.WarehouseID, ""
	if r.Warehouse != nil {
		name = r.Warehouse.Name
		address = r.Warehouse.Address
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(address, "-"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(r.Order.ID, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 7}),
			text.New("Fecha: "+r.Order.OrderDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func partiesRow(r *order.Receipt) core.Row {
	customer := r.Order.CustomerID
	if r.Customer != nil {
		customer = r.Customer.Name + "   |   Tel: " + nonEmpty(r.Customer.Phone, "-")
	}
	cashier := r.Order.EmployeeID
	if r.Employee != nil {
		cashier = r.Employee.Name
	}
	method := r.Order.PaymentMethodID
	if r.PaymentMethod != nil {
		method = r.PaymentMethod.Name
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer, props.Text{Size: 9, Top: 5}),
			text.New("Cajero: "+cashier+"   |   Medio de pago: "+method, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Identificador", 3, align.Left),
		h("Precio", 2, align.Right),
		h("Desc.", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

func tableLineRows(r *order.Receipt) []core.Row {
	rows := make([]core.Row, 0, len(r.Lines))
	for _, l := range r.Lines {
		name := l.ProductID
		if p, ok := r.Products[l.ProductID]; ok && p != nil {
			name = strings.TrimSpace(p.Name + " " + p.Variant)
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(lineIdentifier(l), props.Text{Size: 7, Top: 1.5, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(formatMoney(l.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(formatMoney(l.ItemDiscount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(l.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(o *entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	changeLabel := "Vuelto:"
	if o.RemainingPayment.IsNegative() {
		changeLabel = "Saldo pendiente:"
	}

	return row.New(32).Add(
		col.New(3),
		col.New(3).Add(
			label("Total:"),
			label("Descuento de orden:"),
			text.New("A PAGAR:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10}),
			text.New("Pago:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 16}),
			text.New(changeLabel, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 21}),
		),
		col.New(3).Add(
			value(formatMoney(o.GrandTotal)),
			text.New(formatMoney(o.OrderDiscount), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(formatMoney(o.SubTotal), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10}),
			text.New(formatMoney(o.Payment), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 16}),
			text.New(formatMoney(o.RemainingPayment.Abs()), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 21}),
		),
		col.New(3),
	)
}

func footerRow(o *entity.Order) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(o.ID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Presente este código para cambios o garantías.", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Gracias por su compra", props.Text{Style: fontstyle.Bold, Size: 10, Top: 18, Left: 3, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// lineIdentifier el identificador más específico usado en caja.
func lineIdentifier(l *entity.OrderLine) string {
	switch {
	case l.IMEI1 != "":
		return "IMEI " + l.IMEI1
	case l.IMEI2 != "":
		return "IMEI2 " + l.IMEI2
	case l.SerialNumber != "":
		return "SN " + l.SerialNumber
	case l.Barcode != "":
		return "EAN " + l.Barcode
	}
	return "-"
}

// formatMoney formatea con puntos de miles y coma decimal; los centavos se omiten si son cero.
// Ej: 175000 → "$175.000", 1234.5 → "$1.234,50", -25000 → "-$25.000".
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	d = d.Round(2)
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()

	s := whole.String()
	n := len(s)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := sign + "$" + string(buf)
	if cents != 0 {
		out += fmt.Sprintf(",%02d", cents)
	}
	return out
}
