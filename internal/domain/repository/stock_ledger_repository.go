package repository

import (
	"context"

	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
)

// StockLedgerRepository define el puerto del kardex (append-only).
type StockLedgerRepository interface {
	Append(ctx context.Context, entry *entity.StockLedgerEntry) error
	ListByReference(ctx context.Context, referenceID string) ([]*entity.StockLedgerEntry, error)
}
