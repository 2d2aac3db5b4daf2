package http

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
)

// DiscountManager administra descuentos.
type DiscountManager interface {
	Create(ctx context.Context, employeeID string, in dto.CreateDiscountRequest) (*dto.DiscountResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateDiscountRequest) (*dto.DiscountResponse, error)
	AssignToProduct(ctx context.Context, discountID string, in dto.AssignDiscountRequest) error
}

// DiscountHandler maneja las peticiones HTTP de descuentos (protegido, admin o manager).
type DiscountHandler struct {
	uc  DiscountManager
	log zerolog.Logger
}

// NewDiscountHandler construye el handler.
func NewDiscountHandler(uc DiscountManager, log zerolog.Logger) *DiscountHandler {
	return &DiscountHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear descuento
// @Tags         discounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateDiscountRequest  true  "name, type (fixed|percentage), value, vigencia opcional"
// @Success      201   {object}  dto.DiscountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/discounts [post]
func (h *DiscountHandler) Create(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return unauthorized(c)
	}
	var in dto.CreateDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	resp, err := h.uc.Create(c.Context(), employeeID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary      Modificar descuento (parcial)
// @Description  Solo name, type, value, starts_at, ends_at y active. Un campo desconocido responde 400.
// @Tags         discounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del descuento"
// @Param        body  body      dto.UpdateDiscountRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DiscountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/discounts/{id} [patch]
func (h *DiscountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDiscountRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return badBody(c, "cuerpo inválido: "+err.Error())
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(resp)
}

// AssignToProduct godoc
// @Summary      Asignar descuento a un producto
// @Tags         discounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del descuento"
// @Param        body  body      dto.AssignDiscountRequest  true  "product_id"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/discounts/{id}/products [post]
func (h *DiscountHandler) AssignToProduct(c *fiber.Ctx) error {
	var in dto.AssignDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if err := h.uc.AssignToProduct(c.Context(), c.Params("id"), in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
