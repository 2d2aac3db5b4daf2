package domain

import "errors"

// Clases de error del dominio. Cada error tipado (*Error) pertenece a una de ellas y
// la capa HTTP traduce la clase a un status (400, 404, 409, 500).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInternal     = errors.New("error interno")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Códigos estables expuestos al cliente en dto.ErrorResponse.Code.
const (
	CodeValidation              = "VALIDATION"
	CodeNotFound                = "NOT_FOUND"
	CodeConflict                = "CONFLICT"
	CodeInternal                = "INTERNAL"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeForbidden               = "FORBIDDEN"
	CodeNoIdentifier            = "NO_IDENTIFIER"
	CodeInconsistentIdentifiers = "INCONSISTENT_IDENTIFIERS"
	CodeUnitNotFound            = "UNIT_NOT_FOUND"
	CodeUnitNotReady            = "UNIT_NOT_READY"
	CodeUnitAlreadySold         = "UNIT_ALREADY_SOLD"
	CodeInsufficientStock       = "INSUFFICIENT_STOCK"
	CodeDuplicateIdentifier     = "DUPLICATE_IDENTIFIER"
	CodeRetryable               = "RETRYABLE_CONFLICT"
)

// Error es un error de dominio con clase, código y mensaje apto para el cliente.
// Err guarda la causa técnica (solo para logs).
type Error struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap expone la clase y la causa para errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Is compara por código: errors.Is(err, domain.ErrInsufficientStock) es verdadero para
// cualquier *Error con el mismo Code, aunque el mensaje tenga detalle adicional.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// Errores tipados de referencia (comparar con errors.Is).
var (
	ErrNoIdentifierSupplied    = &Error{Kind: ErrInvalidInput, Code: CodeNoIdentifier, Message: "debe indicar imei_1, imei_2, sn o barcode"}
	ErrInconsistentIdentifiers = &Error{Kind: ErrConflict, Code: CodeInconsistentIdentifiers, Message: "los identificadores corresponden a unidades distintas"}
	ErrUnitNotFound            = &Error{Kind: ErrNotFound, Code: CodeUnitNotFound, Message: "unidad no encontrada"}
	ErrUnitNotReady            = &Error{Kind: ErrConflict, Code: CodeUnitNotReady, Message: "unidad no disponible"}
	ErrUnitAlreadySold         = &Error{Kind: ErrConflict, Code: CodeUnitAlreadySold, Message: "la unidad ya fue vendida"}
	ErrInsufficientStock       = &Error{Kind: ErrConflict, Code: CodeInsufficientStock, Message: "stock insuficiente"}
	ErrDuplicateIdentifier     = &Error{Kind: ErrConflict, Code: CodeDuplicateIdentifier, Message: "identificador duplicado"}
	ErrRetryableConflict       = &Error{Kind: ErrConflict, Code: CodeRetryable, Message: "conflicto de concurrencia, reintente la operación"}
)

// Validation construye un error de validación (400).
func Validation(message string) *Error {
	return &Error{Kind: ErrInvalidInput, Code: CodeValidation, Message: message}
}

// Invalid envuelve un error de validación de campos; el mensaje al cliente es el del error.
func Invalid(err error) *Error {
	return &Error{Kind: ErrInvalidInput, Code: CodeValidation, Message: err.Error(), Err: err}
}

// NotFound construye un error de referencia inexistente (404).
func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Code: CodeNotFound, Message: message}
}

// Conflict construye un conflicto (409) con un código específico.
func Conflict(code, message string) *Error {
	return &Error{Kind: ErrConflict, Code: code, Message: message}
}

// Unauthorized construye un error de identidad ausente o inválida (401).
func Unauthorized(message string) *Error {
	return &Error{Kind: ErrUnauthorized, Code: CodeUnauthorized, Message: message}
}

// Internal envuelve una falla inesperada (500). El mensaje al cliente es genérico.
func Internal(err error) *Error {
	return &Error{Kind: ErrInternal, Code: CodeInternal, Message: "error interno del servidor", Err: err}
}

// WithDetail devuelve una copia del error con un mensaje más específico.
func (e *Error) WithDetail(detail string) *Error {
	cp := *e
	cp.Message = e.Message + ": " + detail
	return &cp
}

// KindOf devuelve la clase de un error. Validación tiene prioridad sobre conflicto y
// conflicto sobre no encontrado; lo que no se reconoce es interno.
func KindOf(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, ErrConflict):
		return ErrConflict
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, ErrForbidden):
		return ErrForbidden
	default:
		return ErrInternal
	}
}

// CodeOf devuelve el código del error: primero el de un agregado (ErrorCode), luego el
// del primer *Error encontrado en la cadena.
func CodeOf(err error) string {
	var coder interface{ ErrorCode() string }
	if errors.As(err, &coder) {
		return coder.ErrorCode()
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	switch KindOf(err) {
	case ErrInvalidInput:
		return CodeValidation
	case ErrConflict:
		return CodeConflict
	case ErrNotFound:
		return CodeNotFound
	case ErrUnauthorized:
		return CodeUnauthorized
	case ErrForbidden:
		return CodeForbidden
	}
	return CodeInternal
}

// MessageOf devuelve el mensaje apto para el cliente. Los errores internos nunca
// exponen su detalle.
func MessageOf(err error) string {
	if KindOf(err) == ErrInternal {
		return Internal(nil).Message
	}
	var agg interface {
		error
		ErrorCode() string
	}
	if errors.As(err, &agg) {
		return agg.Error()
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
