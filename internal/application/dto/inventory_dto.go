package dto

// StockInRequest body para POST /api/inventory/stock-in: el lote ya validado que
// produciría un importador masivo.
type StockInRequest struct {
	WarehouseID string             `json:"warehouse_id" validate:"required"`
	ProductID   string             `json:"product_id" validate:"required"`
	Units       []StockInUnitInput `json:"units" validate:"required,min=1,max=1000,dive"`
}

// StockInUnitInput una unidad a ingresar.
type StockInUnitInput struct {
	IMEI1 string `json:"imei_1,omitempty" validate:"max=64"`
	IMEI2 string `json:"imei_2,omitempty" validate:"max=64"`
	SN    string `json:"sn,omitempty" validate:"max=128"`
}

// StockInResponse resultado del ingreso.
type StockInResponse struct {
	BatchID   string         `json:"batch_id"`
	ProductID string         `json:"product_id"`
	Stock     int            `json:"stock"`
	Units     []UnitResponse `json:"units"`
}

// UnitLookupQuery parámetros de GET /api/inventory/units/lookup.
type UnitLookupQuery struct {
	ProductID   string `query:"product_id" json:"product_id" validate:"required"`
	WarehouseID string `query:"warehouse_id" json:"warehouse_id" validate:"required"`
	IMEI1       string `query:"imei_1" json:"imei_1"`
	IMEI2       string `query:"imei_2" json:"imei_2"`
	SN          string `query:"sn" json:"sn"`
	Barcode     string `query:"barcode" json:"barcode"`
}

// UnitResponse unidad física.
type UnitResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	IMEI1       string `json:"imei_1,omitempty"`
	IMEI2       string `json:"imei_2,omitempty"`
	SN          string `json:"sn,omitempty"`
	Status      string `json:"status"`
}
