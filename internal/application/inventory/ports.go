package inventory

import (
	"context"

	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error
}
