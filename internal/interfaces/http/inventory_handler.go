package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
)

// StockInRegistrar ingresa lotes de unidades.
type StockInRegistrar interface {
	StockIn(ctx context.Context, employeeID string, in dto.StockInRequest) (*dto.StockInResponse, error)
}

// UnitLooker resuelve identificadores a una unidad.
type UnitLooker interface {
	Lookup(ctx context.Context, q dto.UnitLookupQuery) (*dto.UnitResponse, error)
}

// InventoryHandler maneja ingreso y consulta de unidades (protegido).
type InventoryHandler struct {
	stockIn StockInRegistrar
	lookup  UnitLooker
	log     zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stockIn StockInRegistrar, lookup UnitLooker, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{stockIn: stockIn, lookup: lookup, log: log}
}

// StockIn godoc
// @Summary      Ingresar lote de unidades
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.StockInRequest  true  "bodega, producto y unidades (imei_1, imei_2, sn)"
// @Success      201   {object}  dto.StockInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return unauthorized(c)
	}
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	resp, err := h.stockIn.StockIn(c.Context(), employeeID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Lookup godoc
// @Summary      Buscar unidad por identificadores
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query     string  true   "producto"
// @Param        warehouse_id  query     string  true   "bodega"
// @Param        imei_1        query     string  false  "IMEI 1"
// @Param        imei_2        query     string  false  "IMEI 2"
// @Param        sn            query     string  false  "número de serie"
// @Param        barcode       query     string  false  "código de barras del producto"
// @Success      200           {object}  dto.UnitResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      404           {object}  dto.ErrorResponse
// @Failure      409           {object}  dto.ErrorResponse
// @Router       /api/inventory/units/lookup [get]
func (h *InventoryHandler) Lookup(c *fiber.Ctx) error {
	var q dto.UnitLookupQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c, "parámetros inválidos")
	}
	resp, err := h.lookup.Lookup(c.Context(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(resp)
}
