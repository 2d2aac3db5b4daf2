package entity

import "time"

// Estados de una unidad física. La transición ready -> sold es terminal.
const (
	UnitStatusReady   = "ready"
	UnitStatusSold    = "sold"
	UnitStatusDamaged = "damaged"
)

// InventoryUnit representa una instancia física e individualizable de un producto.
// IMEI1, IMEI2 y SerialNumber son únicos globalmente cuando no están vacíos.
type InventoryUnit struct {
	ID           string
	ProductID    string
	WarehouseID  string // bodega donde ingresó
	IMEI1        string
	IMEI2        string
	SerialNumber string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsReady indica si la unidad puede venderse.
func (u *InventoryUnit) IsReady() bool {
	return u.Status == UnitStatusReady
}
