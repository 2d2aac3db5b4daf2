package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
)

// OrderCreator registra ventas.
type OrderCreator interface {
	CreateOrder(ctx context.Context, employeeID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error)
}

// OrderQuerier consulta órdenes y su comprobante.
type OrderQuerier interface {
	GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error)
	DownloadReceiptPDF(ctx context.Context, orderID string) ([]byte, string, error)
}

// OrderHandler maneja las peticiones HTTP de caja (protegido).
type OrderHandler struct {
	create OrderCreator
	query  OrderQuerier
	log    zerolog.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(create OrderCreator, query OrderQuerier, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{create: create, query: query, log: log}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Resuelve cada línea a una unidad física, aplica descuentos y descuenta stock en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateOrderRequest  true  "cabecera, líneas con identificadores y descuentos de orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return unauthorized(c)
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	resp, err := h.create.CreateOrder(c.Context(), employeeID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Consultar orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.query.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(resp)
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.query.DownloadReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
