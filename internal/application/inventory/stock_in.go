package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	dominv "github.com/wasitemo/store-management-sub000/internal/domain/inventory"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
	"github.com/wasitemo/store-management-sub000/pkg/validate"
)

const tracerName = "github.com/wasitemo/store-management-sub000/internal/application/inventory"

// StockInUseCase ingresa un lote de unidades físicas de un producto a una bodega.
type StockInUseCase struct {
	tx     TxRunner
	log    zerolog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewStockInUseCase construye el caso de uso.
func NewStockInUseCase(tx TxRunner, log zerolog.Logger) *StockInUseCase {
	return &StockInUseCase{tx: tx, log: log, tracer: otel.Tracer(tracerName), now: time.Now}
}

// StockIn crea las unidades como ready, registra una entrada de kardex por unidad y
// recalcula el stock del producto, todo en una transacción.
// Los identificadores repetidos dentro del lote o ya existentes son ConflictError.
func (uc *StockInUseCase) StockIn(ctx context.Context, employeeID string, in dto.StockInRequest) (*dto.StockInResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "StockInUseCase.StockIn", trace.WithAttributes(
		attribute.String("stock_in.product_id", in.ProductID),
		attribute.Int("stock_in.units", len(in.Units)),
	))
	defer span.End()

	resp, err := uc.stockIn(ctx, in)
	if err != nil {
		if domain.KindOf(err) == domain.ErrInternal {
			uc.log.Error().Err(err).Str("product_id", in.ProductID).Msg("ingreso de stock fallido")
			err = domain.Internal(err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.CodeOf(err))
		return nil, err
	}

	uc.log.Info().
		Str("batch_id", resp.BatchID).
		Str("employee_id", employeeID).
		Str("product_id", resp.ProductID).
		Int("units", len(resp.Units)).
		Int("stock", resp.Stock).
		Msg("ingreso de stock registrado")
	return resp, nil
}

func (uc *StockInUseCase) stockIn(ctx context.Context, in dto.StockInRequest) (*dto.StockInResponse, error) {
	if err := validate.Struct(in); err != nil {
		var fe validate.FieldErrors
		if errors.As(err, &fe) {
			return nil, domain.Invalid(fe)
		}
		return nil, errors.Wrap(err, "validar ingreso")
	}

	rows := make([]dominv.Identifiers, len(in.Units))
	for i, u := range in.Units {
		rows[i] = dominv.Identifiers{IMEI1: u.IMEI1, IMEI2: u.IMEI2, SerialNumber: u.SN}.Normalized()
	}
	if err := checkBatchDuplicates(in.ProductID, rows); err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	var resp *dto.StockInResponse
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		wh, err := repos.MasterData.GetWarehouse(ctx, in.WarehouseID)
		if err != nil {
			return errors.Wrap(err, "buscar bodega")
		}
		if wh == nil {
			return domain.NotFound("bodega no encontrada")
		}
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return errors.Wrap(err, "buscar producto")
		}
		if product == nil {
			return domain.NotFound("producto no encontrado")
		}
		if product.HasSerial {
			if err := requireSerials(in.ProductID, rows); err != nil {
				return err
			}
		}

		// La tx puede repetirse completa: la respuesta se arma en cada intento.
		created := make([]dto.UnitResponse, 0, len(rows))
		now := uc.now()
		for i, ids := range rows {
			unit := &entity.InventoryUnit{
				ID:           uuid.New().String(),
				ProductID:    product.ID,
				WarehouseID:  in.WarehouseID,
				IMEI1:        ids.IMEI1,
				IMEI2:        ids.IMEI2,
				SerialNumber: ids.SerialNumber,
				Status:       entity.UnitStatusReady,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := repos.Units.Create(ctx, unit); err != nil {
				if errors.Is(err, domain.ErrDuplicateIdentifier) {
					return domain.ErrDuplicateIdentifier.WithDetail(fmt.Sprintf("fila %d ya existe en inventario", i+1))
				}
				return errors.Wrapf(err, "crear unidad fila %d", i+1)
			}
			if err := repos.Ledger.Append(ctx, &entity.StockLedgerEntry{
				ID:              uuid.New().String(),
				WarehouseID:     in.WarehouseID,
				ProductID:       product.ID,
				InventoryUnitID: unit.ID,
				Type:            entity.LedgerTypeIn,
				ReferenceID:     batchID,
				CreatedAt:       now,
			}); err != nil {
				return errors.Wrap(err, "registrar entrada en kardex")
			}
			created = append(created, toUnitResponse(unit))
		}

		// El contador se deriva de las unidades bajo el bloqueo del producto.
		if _, err := repos.Products.GetForUpdate(ctx, product.ID); err != nil {
			return errors.Wrap(err, "bloquear producto")
		}
		ready, err := repos.Units.CountReady(ctx, product.ID)
		if err != nil {
			return errors.Wrap(err, "contar unidades disponibles")
		}
		if err := repos.Products.SetStock(ctx, product.ID, ready); err != nil {
			return errors.Wrap(err, "actualizar stock")
		}
		resp = &dto.StockInResponse{BatchID: batchID, ProductID: product.ID, Units: created, Stock: ready}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// checkBatchDuplicates detecta identificadores repetidos dentro del mismo lote, en
// cualquier combinación de campos (un IMEI-2 igual al IMEI-1 de otra fila también choca).
func checkBatchDuplicates(productID string, rows []dominv.Identifiers) error {
	seen := make(map[string]int)
	var lineErrs dominv.LineErrors
	for i, ids := range rows {
		var problems []*domain.Error
		for _, s := range ids.UnitIdentifiers() {
			if prev, dup := seen[s.Value]; dup && prev != i {
				problems = append(problems, domain.ErrDuplicateIdentifier.WithDetail(
					fmt.Sprintf("%s %q repetido en la fila %d", s.Kind, s.Value, prev+1)))
				continue
			}
			seen[s.Value] = i
		}
		if len(problems) > 0 {
			lineErrs = append(lineErrs, &dominv.LineError{Line: i + 1, ProductID: productID, Problems: problems})
		}
	}
	if len(lineErrs) > 0 {
		return lineErrs
	}
	return nil
}

// requireSerials exige al menos un IMEI o número de serie por fila en productos serializados.
func requireSerials(productID string, rows []dominv.Identifiers) error {
	var lineErrs dominv.LineErrors
	for i, ids := range rows {
		if len(ids.UnitIdentifiers()) == 0 {
			lineErrs = append(lineErrs, &dominv.LineError{
				Line:      i + 1,
				ProductID: productID,
				Problems:  []*domain.Error{domain.ErrNoIdentifierSupplied},
			})
		}
	}
	if len(lineErrs) > 0 {
		return lineErrs
	}
	return nil
}

func toUnitResponse(u *entity.InventoryUnit) dto.UnitResponse {
	return dto.UnitResponse{
		ID:          u.ID,
		ProductID:   u.ProductID,
		WarehouseID: u.WarehouseID,
		IMEI1:       u.IMEI1,
		IMEI2:       u.IMEI2,
		SN:          u.SerialNumber,
		Status:      u.Status,
	}
}
