package inventory

import (
	"context"

	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
)

// UnitFinder es lo que el resolvedor necesita del almacenamiento de unidades.
type UnitFinder interface {
	FindByIdentifier(ctx context.Context, kind IdentifierKind, value, productID, warehouseID string) (*entity.InventoryUnit, error)
	ClaimFirstReady(ctx context.Context, productID, warehouseID string, exclude []string) (*entity.InventoryUnit, error)
	FindFirstReady(ctx context.Context, productID, warehouseID string, exclude []string) (*entity.InventoryUnit, error)
}

// ResolveRequest describe una línea a resolver. Identifiers debe venir normalizado.
//
// ScopeWarehouseID filtra las búsquedas por IMEI/SN a una bodega (variante de consulta
// de stock); vacío busca en todas. PickWarehouseID es la bodega de la que se toma una
// unidad cuando la línea solo trae código de barras. ReadOnly elige esa unidad sin
// bloquearla, para consultas que no van a venderla.
type ResolveRequest struct {
	Product          *entity.Product
	Identifiers      Identifiers
	ScopeWarehouseID string
	PickWarehouseID  string
	Exclude          []string // unidades ya tomadas por otras líneas de la misma orden
	ReadOnly         bool
}

// Resolve lleva los identificadores de una línea a exactamente una unidad lista.
// problems trae todos los problemas de la línea; err solo se usa para fallas de almacenamiento.
func Resolve(ctx context.Context, finder UnitFinder, req ResolveRequest) (unitID string, problems []*domain.Error, err error) {
	ids := req.Identifiers
	if ids.IsEmpty() {
		return "", []*domain.Error{domain.ErrNoIdentifierSupplied}, nil
	}

	unitIDs := ids.UnitIdentifiers()
	outcomes := make([]Outcome, 0, len(unitIDs)+1)

	for _, s := range unitIDs {
		u, err := finder.FindByIdentifier(ctx, s.Kind, s.Value, req.Product.ID, req.ScopeWarehouseID)
		if err != nil {
			return "", nil, err
		}
		outcomes = append(outcomes, outcomeFor(s, u))
	}

	if ids.Barcode != "" {
		bc := Supplied{Kind: KindBarcode, Value: ids.Barcode}
		switch {
		case req.Product.Barcode == "" || req.Product.Barcode != ids.Barcode:
			outcomes = append(outcomes, Outcome{Kind: bc.Kind, Value: bc.Value, Status: OutcomeNotFound})
		case len(unitIDs) == 0:
			// Solo código de barras: se toma la primera unidad lista del producto.
			pick := finder.ClaimFirstReady
			if req.ReadOnly {
				pick = finder.FindFirstReady
			}
			u, err := pick(ctx, req.Product.ID, req.PickWarehouseID, req.Exclude)
			if err != nil {
				return "", nil, err
			}
			if u == nil {
				outcomes = append(outcomes, Outcome{Kind: bc.Kind, Value: bc.Value, Status: OutcomeNotReady})
			} else {
				outcomes = append(outcomes, outcomeFor(bc, u))
			}
		}
	}

	unitID, problems = Reconcile(outcomes)
	return unitID, problems, nil
}

func outcomeFor(s Supplied, u *entity.InventoryUnit) Outcome {
	o := Outcome{Kind: s.Kind, Value: s.Value, Status: OutcomeNotFound}
	if u == nil {
		return o
	}
	o.UnitID = u.ID
	if u.IsReady() {
		o.Status = OutcomeReady
	} else {
		o.Status = OutcomeNotReady
	}
	return o
}
