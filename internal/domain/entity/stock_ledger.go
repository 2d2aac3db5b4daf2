package entity

import "time"

// Tipos de movimiento del kardex.
const (
	LedgerTypeIn  = "in"
	LedgerTypeOut = "out"
)

// StockLedgerEntry es un registro append-only del kardex: una fila por movimiento de unidad.
type StockLedgerEntry struct {
	ID              string
	WarehouseID     string
	ProductID       string
	InventoryUnitID string
	Type            string
	ReferenceID     string // orden o lote de ingreso que originó el movimiento
	CreatedAt       time.Time
}
