package http

import (
	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/pkg/validate"
)

// statusOf traduce la clase del error de dominio a un status HTTP.
func statusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrInvalidInput:
		return fiber.StatusBadRequest
	case domain.ErrUnauthorized:
		return fiber.StatusUnauthorized
	case domain.ErrForbidden:
		return fiber.StatusForbidden
	case domain.ErrNotFound:
		return fiber.StatusNotFound
	case domain.ErrConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// errorResponse arma el cuerpo de error. Los internos nunca exponen su causa.
func errorResponse(err error) dto.ErrorResponse {
	resp := dto.ErrorResponse{Code: domain.CodeOf(err), Message: domain.MessageOf(err)}
	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		resp.Fields = fe
	}
	return resp
}

// writeError responde con el status y el cuerpo que corresponden a err. Los errores
// internos se registran con su causa completa.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status := statusOf(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(errorResponse(err))
}

func badBody(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: detail})
}

// NewErrorHandler maneja lo que llega a Fiber sin pasar por writeError (404 de rutas,
// panics recuperados, body demasiado grande).
func NewErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "HTTP_ERROR"
			switch fe.Code {
			case fiber.StatusNotFound:
				code = domain.CodeNotFound
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			case fiber.StatusRequestEntityTooLarge:
				code = "BODY_TOO_LARGE"
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		return writeError(c, log, err)
	}
}
