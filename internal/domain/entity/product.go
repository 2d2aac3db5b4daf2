package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo.
// Stock es la proyección cacheada de unidades en estado ready; se recalcula dentro de la
// transacción que mueve unidades y nunca es la única fuente de verdad.
type Product struct {
	ID        string
	Name      string
	Variant   string
	Price     decimal.Decimal // precio de venta vigente
	HasSerial bool            // true: cada unidad lleva IMEI o número de serie
	Barcode   string          // código de barras del producto (normalizado)
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
