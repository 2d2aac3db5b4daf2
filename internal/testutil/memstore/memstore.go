// Package memstore es un almacenamiento en memoria con semántica transaccional para
// pruebas de casos de uso: Run serializa las transacciones y revierte el estado si fn falla.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/inventory"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

type state struct {
	Products       map[string]*entity.Product
	Units          map[string]*entity.InventoryUnit
	Ledger         []*entity.StockLedgerEntry
	Discounts      map[string]*entity.Discount
	ItemDiscounts  map[string][]string // product -> discounts
	Orders         map[string]*entity.Order
	OrderDiscounts map[string][]string
	Lines          []*entity.OrderLine
	Customers      map[string]*entity.Customer
	Warehouses     map[string]*entity.Warehouse
	PaymentMethods map[string]*entity.PaymentMethod
	Employees      map[string]*entity.Employee
}

// Store guarda el estado y actúa como TxRunner.
type Store struct {
	mu sync.Mutex
	state

	// FailOn hace fallar la operación con ese nombre (ej. "Orders.CreateLine") con FailErr.
	FailOn  string
	FailErr error

	// Claims cuenta las llamadas a Units.ClaimFirstReady (tomas con bloqueo).
	Claims int
}

// New crea un store vacío.
func New() *Store {
	return &Store{state: state{
		Products:       map[string]*entity.Product{},
		Units:          map[string]*entity.InventoryUnit{},
		Discounts:      map[string]*entity.Discount{},
		ItemDiscounts:  map[string][]string{},
		Orders:         map[string]*entity.Order{},
		OrderDiscounts: map[string][]string{},
		Customers:      map[string]*entity.Customer{},
		Warehouses:     map[string]*entity.Warehouse{},
		PaymentMethods: map[string]*entity.PaymentMethod{},
		Employees:      map[string]*entity.Employee{},
	}}
}

// Run ejecuta fn con repositorios sobre el estado; si fn falla se restaura la copia previa.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	repos := repository.TxRepositories{
		Products:   products{s},
		Units:      units{s},
		Ledger:     ledger{s},
		Discounts:  discounts{s},
		Orders:     orders{s},
		MasterData: masterData{s},
	}
	if err := fn(ctx, repos); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) fail(op string) error {
	if s.FailOn == op {
		return s.FailErr
	}
	return nil
}

// ── Semillas y consultas para las pruebas ────────────────────────────────────

func (s *Store) AddProduct(p *entity.Product) { s.Products[p.ID] = p }
func (s *Store) AddUnit(u *entity.InventoryUnit) { s.Units[u.ID] = u }
func (s *Store) AddDiscount(d *entity.Discount) { s.Discounts[d.ID] = d }

func (s *Store) AssignItemDiscount(productID, discountID string) {
	s.ItemDiscounts[productID] = append(s.ItemDiscounts[productID], discountID)
}

// AddMasterData registra cliente, bodega, medio de pago y empleado con esos IDs.
func (s *Store) AddMasterData(customerID, warehouseID, paymentMethodID, employeeID string) {
	s.Customers[customerID] = &entity.Customer{ID: customerID, Name: "Cliente " + customerID}
	s.Warehouses[warehouseID] = &entity.Warehouse{ID: warehouseID, Name: "Bodega " + warehouseID}
	s.PaymentMethods[paymentMethodID] = &entity.PaymentMethod{ID: paymentMethodID, Name: "Efectivo"}
	s.Employees[employeeID] = &entity.Employee{ID: employeeID, Name: "Cajero " + employeeID}
}

func (s *Store) Unit(id string) entity.InventoryUnit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.Units[id]
}

func (s *Store) Stock(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Products[productID].Stock
}

func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Orders)
}

func (s *Store) LedgerEntries() []entity.StockLedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StockLedgerEntry, len(s.Ledger))
	for i, e := range s.Ledger {
		out[i] = *e
	}
	return out
}

func (s *Store) ReadyUnits(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countReady(productID)
}

func (s *Store) countReady(productID string) int {
	n := 0
	for _, u := range s.Units {
		if u.ProductID == productID && u.IsReady() {
			n++
		}
	}
	return n
}

func (st state) clone() state {
	cp := state{
		Products:       cloneMap(st.Products),
		Units:          cloneMap(st.Units),
		Discounts:      cloneMap(st.Discounts),
		Orders:         cloneMap(st.Orders),
		Customers:      st.Customers,
		Warehouses:     st.Warehouses,
		PaymentMethods: st.PaymentMethods,
		Employees:      st.Employees,
		ItemDiscounts:  map[string][]string{},
		OrderDiscounts: map[string][]string{},
	}
	for k, v := range st.ItemDiscounts {
		cp.ItemDiscounts[k] = slices.Clone(v)
	}
	for k, v := range st.OrderDiscounts {
		cp.OrderDiscounts[k] = slices.Clone(v)
	}
	for _, e := range st.Ledger {
		c := *e
		cp.Ledger = append(cp.Ledger, &c)
	}
	for _, l := range st.Lines {
		c := *l
		cp.Lines = append(cp.Lines, &c)
	}
	return cp
}

func cloneMap[T any](m map[string]*T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

// ── Repositorios ─────────────────────────────────────────────────────────────

type products struct{ s *Store }

func (r products) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if err := r.s.fail("Products.GetByID"); err != nil {
		return nil, err
	}
	if p, ok := r.s.Products[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r products) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	if err := r.s.fail("Products.GetByIDs"); err != nil {
		return nil, err
	}
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.Products[id]; ok {
			c := *p
			out[id] = &c
		}
	}
	return out, nil
}

func (r products) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if err := r.s.fail("Products.GetForUpdate"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r products) SetStock(_ context.Context, productID string, stock int) error {
	if err := r.s.fail("Products.SetStock"); err != nil {
		return err
	}
	p, ok := r.s.Products[productID]
	if !ok {
		return domain.NotFound("producto no encontrado")
	}
	p.Stock = stock
	return nil
}

type units struct{ s *Store }

func (r units) Create(_ context.Context, u *entity.InventoryUnit) error {
	if err := r.s.fail("Units.Create"); err != nil {
		return err
	}
	for _, other := range r.s.Units {
		if clash(u.IMEI1, other.IMEI1) || clash(u.IMEI2, other.IMEI2) || clash(u.SerialNumber, other.SerialNumber) {
			return domain.ErrDuplicateIdentifier
		}
	}
	c := *u
	r.s.Units[u.ID] = &c
	return nil
}

// clash replica un índice único parcial (WHERE col IS NOT NULL).
func clash(a, b string) bool {
	return a != "" && a == b
}

func (r units) GetByID(_ context.Context, id string) (*entity.InventoryUnit, error) {
	if u, ok := r.s.Units[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r units) FindByIdentifier(_ context.Context, kind inventory.IdentifierKind, value, productID, warehouseID string) (*entity.InventoryUnit, error) {
	if err := r.s.fail("Units.FindByIdentifier"); err != nil {
		return nil, err
	}
	for _, u := range r.s.Units {
		if u.ProductID != productID || (warehouseID != "" && u.WarehouseID != warehouseID) {
			continue
		}
		var field string
		switch kind {
		case inventory.KindIMEI1:
			field = u.IMEI1
		case inventory.KindIMEI2:
			field = u.IMEI2
		case inventory.KindSerial:
			field = u.SerialNumber
		}
		if field != "" && field == value {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r units) ClaimFirstReady(_ context.Context, productID, warehouseID string, exclude []string) (*entity.InventoryUnit, error) {
	r.s.Claims++
	return r.firstReady(productID, warehouseID, exclude), nil
}

func (r units) FindFirstReady(_ context.Context, productID, warehouseID string, exclude []string) (*entity.InventoryUnit, error) {
	return r.firstReady(productID, warehouseID, exclude), nil
}

func (r units) firstReady(productID, warehouseID string, exclude []string) *entity.InventoryUnit {
	ids := make([]string, 0, len(r.s.Units))
	for id := range r.s.Units {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		u := r.s.Units[id]
		if u.ProductID == productID && u.WarehouseID == warehouseID && u.IsReady() && !slices.Contains(exclude, id) {
			c := *u
			return &c
		}
	}
	return nil
}

func (r units) MarkSold(_ context.Context, unitID string) (bool, error) {
	if err := r.s.fail("Units.MarkSold"); err != nil {
		return false, err
	}
	u, ok := r.s.Units[unitID]
	if !ok || !u.IsReady() {
		return false, nil
	}
	u.Status = entity.UnitStatusSold
	return true, nil
}

func (r units) CountReady(_ context.Context, productID string) (int, error) {
	return r.s.countReady(productID), nil
}

type ledger struct{ s *Store }

func (r ledger) Append(_ context.Context, e *entity.StockLedgerEntry) error {
	if err := r.s.fail("Ledger.Append"); err != nil {
		return err
	}
	c := *e
	r.s.Ledger = append(r.s.Ledger, &c)
	return nil
}

func (r ledger) ListByReference(_ context.Context, referenceID string) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.s.Ledger {
		if e.ReferenceID == referenceID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}

type discounts struct{ s *Store }

func (r discounts) Create(_ context.Context, d *entity.Discount) error {
	c := *d
	r.s.Discounts[d.ID] = &c
	return nil
}

func (r discounts) GetByID(_ context.Context, id string) (*entity.Discount, error) {
	if d, ok := r.s.Discounts[id]; ok {
		c := *d
		return &c, nil
	}
	return nil, nil
}

func (r discounts) GetByIDs(ctx context.Context, ids []string) ([]*entity.Discount, error) {
	var out []*entity.Discount
	for _, id := range ids {
		if d, _ := r.GetByID(ctx, id); d != nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r discounts) Update(_ context.Context, d *entity.Discount) error {
	if _, ok := r.s.Discounts[d.ID]; !ok {
		return domain.NotFound("descuento no encontrado")
	}
	c := *d
	r.s.Discounts[d.ID] = &c
	return nil
}

func (r discounts) ListByProduct(ctx context.Context, productID string) ([]*entity.Discount, error) {
	if err := r.s.fail("Discounts.ListByProduct"); err != nil {
		return nil, err
	}
	return r.GetByIDs(ctx, r.s.ItemDiscounts[productID])
}

func (r discounts) AssignToProduct(_ context.Context, productID, discountID string) error {
	if slices.Contains(r.s.ItemDiscounts[productID], discountID) {
		return nil
	}
	r.s.ItemDiscounts[productID] = append(r.s.ItemDiscounts[productID], discountID)
	return nil
}

type orders struct{ s *Store }

func (r orders) Create(_ context.Context, o *entity.Order) error {
	if err := r.s.fail("Orders.Create"); err != nil {
		return err
	}
	c := *o
	c.DiscountIDs = nil
	r.s.Orders[o.ID] = &c
	return nil
}

func (r orders) AddDiscounts(_ context.Context, orderID string, ids []string) error {
	r.s.OrderDiscounts[orderID] = append(r.s.OrderDiscounts[orderID], ids...)
	return nil
}

func (r orders) CreateLine(_ context.Context, l *entity.OrderLine) error {
	if err := r.s.fail("Orders.CreateLine"); err != nil {
		return err
	}
	for _, other := range r.s.Lines {
		if other.InventoryUnitID == l.InventoryUnitID {
			return domain.ErrUnitAlreadySold
		}
	}
	c := *l
	r.s.Lines = append(r.s.Lines, &c)
	return nil
}

func (r orders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.s.Orders[id]
	if !ok {
		return nil, nil
	}
	c := *o
	c.DiscountIDs = slices.Clone(r.s.OrderDiscounts[id])
	return &c, nil
}

func (r orders) ListLines(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	var out []*entity.OrderLine
	for _, l := range r.s.Lines {
		if l.OrderID == orderID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

type masterData struct{ s *Store }

func (r masterData) GetCustomer(_ context.Context, id string) (*entity.Customer, error) {
	return r.s.Customers[id], nil
}

func (r masterData) GetWarehouse(_ context.Context, id string) (*entity.Warehouse, error) {
	return r.s.Warehouses[id], nil
}

func (r masterData) GetPaymentMethod(_ context.Context, id string) (*entity.PaymentMethod, error) {
	return r.s.PaymentMethods[id], nil
}

func (r masterData) GetEmployee(_ context.Context, id string) (*entity.Employee, error) {
	return r.s.Employees[id], nil
}
