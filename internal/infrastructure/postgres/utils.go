package postgres

import (
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wasitemo/store-management-sub000/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
)

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// mapError traduce errores de PostgreSQL a errores de dominio. what describe la operación
// para el contexto del error interno.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	code, constraint := pgCode(err)
	switch code {
	case pgUniqueViolation:
		switch constraint {
		case "order_lines_inventory_unit_id_key":
			return &domain.Error{Kind: domain.ErrConflict, Code: domain.CodeUnitAlreadySold, Message: domain.ErrUnitAlreadySold.Message, Err: err}
		case "inventory_units_imei_1_key", "inventory_units_imei_2_key", "inventory_units_serial_number_key":
			return &domain.Error{Kind: domain.ErrConflict, Code: domain.CodeDuplicateIdentifier, Message: domain.ErrDuplicateIdentifier.Message + ": " + constraint, Err: err}
		}
		return &domain.Error{Kind: domain.ErrConflict, Code: domain.CodeConflict, Message: "registro duplicado", Err: err}
	case pgForeignKeyViolation:
		return &domain.Error{Kind: domain.ErrNotFound, Code: domain.CodeNotFound, Message: "referencia inexistente: " + constraint, Err: err}
	case pgLockNotAvailable, pgQueryCanceled:
		return &domain.Error{Kind: domain.ErrConflict, Code: domain.CodeConflict, Message: "recurso ocupado, reintente", Err: err}
	case pgDeadlockDetected, pgSerializationFailure:
		return &domain.Error{Kind: domain.ErrConflict, Code: domain.CodeRetryable, Message: domain.ErrRetryableConflict.Message, Err: err}
	}
	return errors.Wrap(err, what)
}

// isRetryable indica si la transacción puede repetirse completa (deadlock o serialización).
func isRetryable(err error) bool {
	if errors.Is(err, domain.ErrRetryableConflict) {
		return true
	}
	code, _ := pgCode(err)
	return code == pgDeadlockDetected || code == pgSerializationFailure
}
