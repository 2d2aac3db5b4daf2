package inventory

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
	"github.com/wasitemo/store-management-sub000/internal/domain"
	dominv "github.com/wasitemo/store-management-sub000/internal/domain/inventory"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
	"github.com/wasitemo/store-management-sub000/pkg/validate"
)

// LookupUseCase resuelve identificadores a una unidad dentro de una bodega, sin modificar nada.
type LookupUseCase struct {
	tx TxRunner
}

// NewLookupUseCase construye el caso de uso.
func NewLookupUseCase(tx TxRunner) *LookupUseCase {
	return &LookupUseCase{tx: tx}
}

// Lookup devuelve la unidad lista que corresponde a los identificadores, o todos los
// problemas encontrados unidos en un solo error.
func (uc *LookupUseCase) Lookup(ctx context.Context, q dto.UnitLookupQuery) (*dto.UnitResponse, error) {
	if err := validate.Struct(q); err != nil {
		var fe validate.FieldErrors
		if errors.As(err, &fe) {
			return nil, domain.Invalid(fe)
		}
		return nil, domain.Internal(err)
	}
	ids := dominv.Identifiers{IMEI1: q.IMEI1, IMEI2: q.IMEI2, SerialNumber: q.SN, Barcode: q.Barcode}.Normalized()
	if ids.IsEmpty() {
		return nil, domain.ErrNoIdentifierSupplied
	}

	var resp *dto.UnitResponse
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		product, err := repos.Products.GetByID(ctx, q.ProductID)
		if err != nil {
			return errors.Wrap(err, "buscar producto")
		}
		if product == nil {
			return domain.NotFound("producto no encontrado")
		}

		unitID, problems, err := dominv.Resolve(ctx, repos.Units, dominv.ResolveRequest{
			Product:          product,
			Identifiers:      ids,
			ScopeWarehouseID: q.WarehouseID,
			PickWarehouseID:  q.WarehouseID,
			ReadOnly:         true,
		})
		if err != nil {
			return errors.Wrap(err, "resolver identificadores")
		}
		if len(problems) > 0 {
			return &dominv.LineError{ProductID: q.ProductID, Problems: problems}
		}

		unit, err := repos.Units.GetByID(ctx, unitID)
		if err != nil {
			return errors.Wrap(err, "leer unidad")
		}
		if unit == nil {
			return domain.ErrUnitNotFound
		}
		r := toUnitResponse(unit)
		resp = &r
		return nil
	})
	if err != nil {
		if domain.KindOf(err) == domain.ErrInternal {
			return nil, domain.Internal(err)
		}
		return nil, err
	}
	return resp, nil
}
