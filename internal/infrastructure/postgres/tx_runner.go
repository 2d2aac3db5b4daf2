package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/wasitemo/store-management-sub000/internal/application/discount"
	"github.com/wasitemo/store-management-sub000/internal/application/inventory"
	"github.com/wasitemo/store-management-sub000/internal/application/order"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

var (
	_ order.TxRunner     = (*TxRunner)(nil)
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ discount.TxRunner  = (*TxRunner)(nil)
)

// TxOptions límites aplicados a cada transacción.
type TxOptions struct {
	StatementTimeout time.Duration
	LockTimeout      time.Duration
	MaxRetries       int // reintentos extra ante deadlock o serialization failure
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	opts TxOptions
	log  zerolog.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, opts TxOptions, log zerolog.Logger) *TxRunner {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &TxRunner{pool: pool, opts: opts, log: log}
}

// Run inicia una transacción, ejecuta fn con los repos atados a la tx y hace Commit o Rollback.
// Un deadlock o una falla de serialización repiten fn completo hasta MaxRetries veces.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	return withRetries(ctx, r.opts.MaxRetries, r.log, func() error {
		return r.runOnce(ctx, fn)
	})
}

// withRetries repite attempt mientras falle con un error reintentable, con espera
// exponencial entre intentos. Devuelve el último error si se agotan los reintentos o
// si ctx se cancela durante la espera.
func withRetries(ctx context.Context, maxRetries int, log zerolog.Logger, attempt func() error) error {
	for n := 0; ; n++ {
		err := attempt()
		if err == nil || !isRetryable(err) || n >= maxRetries {
			return err
		}
		log.Warn().Err(err).Int("attempt", n+1).Msg("transacción reintentada")
		if werr := backoff(ctx, n); werr != nil {
			return err
		}
	}
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.applyTimeouts(ctx, tx); err != nil {
		return err
	}

	if err := fn(ctx, NewTxRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError(err, "commit transaction")
	}
	return nil
}

// applyTimeouts equivale a SET LOCAL: los valores mueren con la transacción.
func (r *TxRunner) applyTimeouts(ctx context.Context, tx pgx.Tx) error {
	settings := []struct {
		name  string
		value time.Duration
	}{
		{"statement_timeout", r.opts.StatementTimeout},
		{"lock_timeout", r.opts.LockTimeout},
	}
	for _, s := range settings {
		if s.value <= 0 {
			continue
		}
		ms := strconv.FormatInt(s.value.Milliseconds(), 10)
		if _, err := tx.Exec(ctx, `SELECT set_config($1, $2, true)`, s.name, ms); err != nil {
			return errors.Wrapf(err, "set %s", s.name)
		}
	}
	return nil
}

// NewTxRepositories arma el conjunto de repositorios sobre un mismo Querier.
func NewTxRepositories(q Querier) repository.TxRepositories {
	return repository.TxRepositories{
		Products:   NewProductRepository(q),
		Units:      NewInventoryUnitRepository(q),
		Ledger:     NewStockLedgerRepository(q),
		Discounts:  NewDiscountRepository(q),
		Orders:     NewOrderRepository(q),
		MasterData: NewMasterDataRepository(q),
	}
}

func backoff(ctx context.Context, attempt int) error {
	t := time.NewTimer(time.Duration(20<<attempt) * time.Millisecond)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
