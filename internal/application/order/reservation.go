package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/inventory"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

// consumeUnits registra la salida en el kardex, marca cada unidad como vendida y guarda
// la línea de la orden. La salida se anota en la bodega donde la unidad ingresó, que
// puede no ser la de la orden cuando se vende por IMEI o serie. Se recorre en orden
// ascendente de unidad para que dos órdenes concurrentes tomen los bloqueos de filas en
// el mismo orden.
func consumeUnits(ctx context.Context, repos repository.TxRepositories, order *entity.Order, lines []*entity.OrderLine, now time.Time) error {
	sorted := make([]*entity.OrderLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].InventoryUnitID < sorted[j].InventoryUnitID })

	for _, l := range sorted {
		unit, err := repos.Units.GetByID(ctx, l.InventoryUnitID)
		if err != nil {
			return errors.Wrap(err, "leer unidad")
		}
		if unit == nil {
			return domain.ErrUnitNotFound.WithDetail(l.InventoryUnitID)
		}
		l.WarehouseID = unit.WarehouseID

		entry := &entity.StockLedgerEntry{
			ID:              uuid.New().String(),
			WarehouseID:     unit.WarehouseID,
			ProductID:       l.ProductID,
			InventoryUnitID: l.InventoryUnitID,
			Type:            entity.LedgerTypeOut,
			ReferenceID:     order.ID,
			CreatedAt:       now,
		}
		if err := repos.Ledger.Append(ctx, entry); err != nil {
			return errors.Wrap(err, "registrar salida en kardex")
		}

		ok, err := repos.Units.MarkSold(ctx, l.InventoryUnitID)
		if err != nil {
			return errors.Wrap(err, "marcar unidad vendida")
		}
		if !ok {
			return domain.ErrUnitAlreadySold.WithDetail(l.InventoryUnitID)
		}

		if err := repos.Orders.CreateLine(ctx, l); err != nil {
			return errors.Wrap(err, "guardar línea")
		}
	}
	return nil
}

// reconcileStock bloquea cada producto en orden ascendente, exige que el contador cubra
// lo pedido y lo reemplaza por el conteo real de unidades ready.
func reconcileStock(ctx context.Context, repos repository.TxRepositories, qty map[string]int, log zerolog.Logger) error {
	for _, productID := range inventory.SortedProductIDs(qty) {
		requested := qty[productID]

		p, err := repos.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "bloquear producto")
		}
		if p == nil {
			return domain.NotFound(fmt.Sprintf("producto %s no encontrado", productID))
		}
		if p.Stock < requested {
			return domain.ErrInsufficientStock.WithDetail(
				fmt.Sprintf("producto %s: disponible %d, solicitado %d", productID, p.Stock, requested))
		}

		ready, err := repos.Units.CountReady(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "contar unidades disponibles")
		}
		if expected := p.Stock - requested; ready != expected {
			log.Warn().
				Str("product_id", productID).
				Int("counter", p.Stock).
				Int("requested", requested).
				Int("ready_units", ready).
				Msg("contador de stock desfasado, se recalcula desde las unidades")
		}
		if err := repos.Products.SetStock(ctx, productID, ready); err != nil {
			return errors.Wrap(err, "actualizar stock")
		}
	}
	return nil
}
