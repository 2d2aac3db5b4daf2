package order

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/inventory"
	"github.com/wasitemo/store-management-sub000/internal/domain/pricing"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
	"github.com/wasitemo/store-management-sub000/pkg/validate"
)

const tracerName = "github.com/wasitemo/store-management-sub000/internal/application/order"

// Options reglas configurables de la caja.
type Options struct {
	EnforceDiscountWindow bool
	Now                   func() time.Time
	Tracer                trace.Tracer
}

// CreateOrderUseCase registra una venta completa en una sola transacción: valida, cotiza,
// resuelve identificadores, consume unidades y concilia stock. Cualquier falla revierte todo.
type CreateOrderUseCase struct {
	tx     TxRunner
	log    zerolog.Logger
	opts   Options
	tracer trace.Tracer
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(tx TxRunner, log zerolog.Logger, opts Options) *CreateOrderUseCase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &CreateOrderUseCase{tx: tx, log: log, opts: opts, tracer: tracer}
}

// checkout es el estado de trabajo de una orden mientras se arma.
type checkout struct {
	employeeID string
	orderDate  time.Time
	payment    decimal.Decimal
	lines      []inventory.Line
	discounts  []string
}

// CreateOrder ejecuta la venta para el empleado autenticado.
//
// Retorna:
//   - ValidationError (domain.ErrInvalidInput) si faltan campos o una línea no trae identificadores.
//   - NotFoundError si cliente, bodega, medio de pago, empleado o producto no existen.
//   - ConflictError si una unidad no está disponible, los identificadores no coinciden
//     o el stock no alcanza.
//   - InternalError (mensaje genérico) ante cualquier otra falla.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, employeeID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "CreateOrderUseCase.CreateOrder", trace.WithAttributes(
		attribute.String("order.warehouse_id", in.WarehouseID),
		attribute.Int("order.items", len(in.Items)),
	))
	defer span.End()

	log := uc.log.With().Str("employee_id", employeeID).Str("warehouse_id", in.WarehouseID).Int("lines", len(in.Items)).Logger()

	resp, err := uc.createOrder(ctx, employeeID, in, log)
	if err != nil {
		kind := domain.KindOf(err)
		if kind == domain.ErrInternal {
			log.Error().Err(err).Msg("orden abortada por error interno")
			err = domain.Internal(err)
		} else {
			log.Info().Str("code", domain.CodeOf(err)).Str("reason", err.Error()).Msg("orden rechazada")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.CodeOf(err))
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", resp.ID))
	log.Info().
		Str("order_id", resp.ID).
		Str("sub_total", resp.SubTotal.String()).
		Str("remaining_payment", resp.RemainingPayment.String()).
		Msg("orden creada")
	return resp, nil
}

func (uc *CreateOrderUseCase) createOrder(ctx context.Context, employeeID string, in dto.CreateOrderRequest, log zerolog.Logger) (*dto.OrderResponse, error) {
	// ── Received -> Validated ────────────────────────────────────────────────
	co, err := parseCheckout(employeeID, in)
	if err != nil {
		return nil, err
	}
	policy := pricing.Policy{EnforceWindow: uc.opts.EnforceDiscountWindow, At: co.orderDate}

	var resp *dto.OrderResponse
	err = uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if err := checkReferences(ctx, repos.MasterData, co.employeeID, in); err != nil {
			return err
		}
		products, err := loadProducts(ctx, repos.Products, co.lines)
		if err != nil {
			return err
		}
		qty := inventory.Aggregate(co.lines)

		// ── Validated -> Priced ─────────────────────────────────────────────
		prices := make([]pricing.LinePrice, len(co.lines))
		itemDiscounts := make(map[string][]*entity.Discount)
		for i, l := range co.lines {
			ds, ok := itemDiscounts[l.ProductID]
			if !ok {
				ds, err = repos.Discounts.ListByProduct(ctx, l.ProductID)
				if err != nil {
					return errors.Wrap(err, "descuentos por ítem")
				}
				itemDiscounts[l.ProductID] = ds
			}
			prices[i] = policy.PriceLine(products[l.ProductID].Price, ds)
		}

		orderDiscounts, err := repos.Discounts.GetByIDs(ctx, co.discounts)
		if err != nil {
			return errors.Wrap(err, "descuentos de orden")
		}
		totals := policy.ComputeTotals(prices, orderDiscounts, co.payment)
		if totals.SubTotal.IsNegative() {
			return domain.Validation(fmt.Sprintf("los descuentos dejan el subtotal en %s", totals.SubTotal.StringFixed(2)))
		}

		now := uc.opts.Now()
		order := &entity.Order{
			ID:               uuid.New().String(),
			CustomerID:       in.CustomerID,
			WarehouseID:      in.WarehouseID,
			PaymentMethodID:  in.PaymentMethodID,
			EmployeeID:       co.employeeID,
			OrderDate:        co.orderDate,
			Payment:          totals.Payment,
			GrandTotal:       totals.GrandTotal,
			OrderDiscount:    totals.OrderDiscount,
			SubTotal:         totals.SubTotal,
			RemainingPayment: totals.RemainingPayment,
			DiscountIDs:      existingIDs(orderDiscounts),
			CreatedAt:        now,
		}
		if err := repos.Orders.Create(ctx, order); err != nil {
			return errors.Wrap(err, "guardar orden")
		}
		if len(order.DiscountIDs) > 0 {
			if err := repos.Orders.AddDiscounts(ctx, order.ID, order.DiscountIDs); err != nil {
				return errors.Wrap(err, "guardar descuentos de orden")
			}
		}

		// ── Priced -> Reserved ──────────────────────────────────────────────
		unitIDs, err := resolveLines(ctx, repos.Units, products, co.lines, in.WarehouseID)
		if err != nil {
			return err
		}

		shares := pricing.AllocateOrderDiscount(totals.OrderDiscount, prices)
		lines := make([]*entity.OrderLine, len(co.lines))
		for i, l := range co.lines {
			lines[i] = &entity.OrderLine{
				ID:              uuid.New().String(),
				OrderID:         order.ID,
				ProductID:       l.ProductID,
				WarehouseID:     order.WarehouseID,
				InventoryUnitID: unitIDs[i],
				IMEI1:           l.Identifiers.IMEI1,
				IMEI2:           l.Identifiers.IMEI2,
				SerialNumber:    l.Identifiers.SerialNumber,
				Barcode:         l.Identifiers.Barcode,
				Price:           prices[i].Base,
				ItemDiscount:    prices[i].Discount,
				OrderDiscount:   shares[i],
				LineTotal:       prices[i].Price,
			}
		}
		if err := consumeUnits(ctx, repos, order, lines, now); err != nil {
			return err
		}
		if err := reconcileStock(ctx, repos, qty, log); err != nil {
			return err
		}

		resp = toOrderResponse(order, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// parseCheckout valida la forma del request y normaliza identificadores. Las líneas sin
// identificador se reportan todas juntas.
func parseCheckout(employeeID string, in dto.CreateOrderRequest) (*checkout, error) {
	if employeeID == "" {
		return nil, domain.Unauthorized("empleado no identificado")
	}
	if err := validate.Struct(in); err != nil {
		var fe validate.FieldErrors
		if errors.As(err, &fe) {
			return nil, domain.Invalid(fe)
		}
		return nil, errors.Wrap(err, "validar orden")
	}

	orderDate, err := parseOrderDate(in.OrderDate)
	if err != nil {
		return nil, domain.Validation("order_date debe tener formato YYYY-MM-DD o RFC 3339")
	}
	if in.Payment.IsNegative() {
		return nil, domain.Validation("payment no puede ser negativo")
	}

	co := &checkout{
		employeeID: employeeID,
		orderDate:  orderDate,
		payment:    *in.Payment,
		lines:      make([]inventory.Line, len(in.Items)),
	}
	var missing inventory.LineErrors
	for i, item := range in.Items {
		ids := inventory.Identifiers{
			IMEI1:        item.IMEI1,
			IMEI2:        item.IMEI2,
			SerialNumber: item.SN,
			Barcode:      item.Barcode,
		}.Normalized()
		if ids.IsEmpty() {
			missing = append(missing, &inventory.LineError{
				Line:      i + 1,
				ProductID: item.StuffID,
				Problems:  []*domain.Error{domain.ErrNoIdentifierSupplied},
			})
		}
		co.lines[i] = inventory.Line{ProductID: strings.TrimSpace(item.StuffID), Identifiers: ids}
	}
	if len(missing) > 0 {
		return nil, missing
	}

	for _, d := range in.Discounts {
		id := strings.TrimSpace(d.DiscountID)
		if !slices.Contains(co.discounts, id) {
			co.discounts = append(co.discounts, id)
		}
	}
	return co, nil
}

func parseOrderDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// checkReferences verifica que existan los datos maestros referenciados.
func checkReferences(ctx context.Context, md repository.MasterDataRepository, employeeID string, in dto.CreateOrderRequest) error {
	customer, err := md.GetCustomer(ctx, in.CustomerID)
	if err != nil {
		return errors.Wrap(err, "buscar cliente")
	}
	if customer == nil {
		return domain.NotFound("cliente no encontrado")
	}
	warehouse, err := md.GetWarehouse(ctx, in.WarehouseID)
	if err != nil {
		return errors.Wrap(err, "buscar bodega")
	}
	if warehouse == nil {
		return domain.NotFound("bodega no encontrada")
	}
	pm, err := md.GetPaymentMethod(ctx, in.PaymentMethodID)
	if err != nil {
		return errors.Wrap(err, "buscar medio de pago")
	}
	if pm == nil {
		return domain.NotFound("medio de pago no encontrado")
	}
	employee, err := md.GetEmployee(ctx, employeeID)
	if err != nil {
		return errors.Wrap(err, "buscar empleado")
	}
	if employee == nil {
		return domain.NotFound("empleado no encontrado")
	}
	return nil
}

// loadProducts carga todos los productos de la orden; uno inexistente es NotFound.
func loadProducts(ctx context.Context, repo repository.ProductRepository, lines []inventory.Line) (map[string]*entity.Product, error) {
	ids := inventory.SortedProductIDs(inventory.Aggregate(lines))
	products, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "buscar productos")
	}
	var missing []string
	for _, id := range ids {
		if products[id] == nil {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NotFound("producto no encontrado: " + strings.Join(missing, ", "))
	}
	return products, nil
}

// resolveLines resuelve primero las líneas con IMEI/SN y después las que solo traen código
// de barras, para que estas no tomen una unidad nombrada explícitamente en otra línea.
// Todos los errores de todas las líneas se devuelven juntos.
func resolveLines(ctx context.Context, units repository.InventoryUnitRepository, products map[string]*entity.Product, lines []inventory.Line, warehouseID string) ([]string, error) {
	unitIDs := make([]string, len(lines))
	problems := make([][]*domain.Error, len(lines))
	claimedBy := make(map[string]int)

	pass := func(barcodeOnly bool) error {
		for i, l := range lines {
			if (len(l.Identifiers.UnitIdentifiers()) == 0) != barcodeOnly {
				continue
			}
			id, lineProblems, err := inventory.Resolve(ctx, units, inventory.ResolveRequest{
				Product:         products[l.ProductID],
				Identifiers:     l.Identifiers,
				PickWarehouseID: warehouseID,
				Exclude:         claimedUnits(claimedBy),
			})
			if err != nil {
				return errors.Wrapf(err, "resolver línea %d", i+1)
			}
			if len(lineProblems) > 0 {
				problems[i] = lineProblems
				continue
			}
			if prev, dup := claimedBy[id]; dup {
				problems[i] = []*domain.Error{domain.ErrDuplicateIdentifier.WithDetail(
					fmt.Sprintf("la unidad ya está en la línea %d", prev+1))}
				continue
			}
			claimedBy[id] = i
			unitIDs[i] = id
		}
		return nil
	}
	if err := pass(false); err != nil {
		return nil, err
	}
	if err := pass(true); err != nil {
		return nil, err
	}

	var lineErrs inventory.LineErrors
	for i, p := range problems {
		if len(p) > 0 {
			lineErrs = append(lineErrs, &inventory.LineError{Line: i + 1, ProductID: lines[i].ProductID, Problems: p})
		}
	}
	if len(lineErrs) > 0 {
		return nil, lineErrs
	}
	return unitIDs, nil
}

func claimedUnits(claimedBy map[string]int) []string {
	out := make([]string, 0, len(claimedBy))
	for id := range claimedBy {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func existingIDs(ds []*entity.Discount) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}
