package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
	"github.com/wasitemo/store-management-sub000/internal/domain"
	apphttp "github.com/wasitemo/store-management-sub000/internal/interfaces/http"
	"github.com/wasitemo/store-management-sub000/pkg/validate"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrders struct {
	err        error
	employeeID string
	in         dto.CreateOrderRequest
}

func (f *fakeOrders) CreateOrder(_ context.Context, employeeID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	f.employeeID, f.in = employeeID, in
	if f.err != nil {
		return nil, f.err
	}
	return &dto.OrderResponse{ID: "o-1", EmployeeID: employeeID, SubTotal: decimal.NewFromInt(175000), RemainingPayment: decimal.NewFromInt(25000)}, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id string) (*dto.OrderResponse, error) {
	if id != "o-1" {
		return nil, domain.NotFound("orden no encontrada")
	}
	return &dto.OrderResponse{ID: id}, nil
}

func (f *fakeOrders) DownloadReceiptPDF(_ context.Context, id string) ([]byte, string, error) {
	return []byte("%PDF-1.3 fake"), "orden_" + id + ".pdf", nil
}

type fakeInventory struct {
	query dto.UnitLookupQuery
}

func (f *fakeInventory) StockIn(_ context.Context, _ string, in dto.StockInRequest) (*dto.StockInResponse, error) {
	return &dto.StockInResponse{BatchID: "b-1", ProductID: in.ProductID, Stock: len(in.Units)}, nil
}

func (f *fakeInventory) Lookup(_ context.Context, q dto.UnitLookupQuery) (*dto.UnitResponse, error) {
	f.query = q
	return &dto.UnitResponse{ID: "u-1", ProductID: q.ProductID, WarehouseID: q.WarehouseID, Status: "ready"}, nil
}

type fakeDiscounts struct {
	updated dto.UpdateDiscountRequest
}

func (f *fakeDiscounts) Create(_ context.Context, employeeID string, in dto.CreateDiscountRequest) (*dto.DiscountResponse, error) {
	return &dto.DiscountResponse{ID: "d-1", EmployeeID: employeeID, Name: in.Name, Type: in.Type}, nil
}

func (f *fakeDiscounts) Update(_ context.Context, id string, in dto.UpdateDiscountRequest) (*dto.DiscountResponse, error) {
	f.updated = in
	return &dto.DiscountResponse{ID: id}, nil
}

func (f *fakeDiscounts) AssignToProduct(context.Context, string, dto.AssignDiscountRequest) error {
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testServer struct {
	app       *fiber.App
	orders    *fakeOrders
	inventory *fakeInventory
	discounts *fakeDiscounts
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{orders: &fakeOrders{}, inventory: &fakeInventory{}, discounts: &fakeDiscounts{}}
	s.app = apphttp.NewApp("test", zerolog.Nop())
	apphttp.Router(s.app, apphttp.RouterDeps{
		CreateOrder: s.orders,
		Orders:      s.orders,
		StockIn:     s.inventory,
		Lookup:      s.inventory,
		Discounts:   s.discounts,
		DB:          fakePinger{},
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
		Log:         zerolog.Nop(),
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path, role, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if role != "-" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

const orderBody = `{
	"customer_id": "c-1", "warehouse_id": "w-1", "payment_method_id": "pm-1",
	"order_date": "2026-03-01", "payment": "200000",
	"items": [{"stuff_id": "p-1", "imei_1": "3500"}],
	"discounts": [{"discount_id": "d-1"}]
}`

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrderHandler_Creada(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/orders", apphttp.RoleCashier, orderBody)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, testEmployeeID, s.orders.employeeID)
	require.Len(t, s.orders.in.Items, 1)
	assert.Equal(t, "3500", s.orders.in.Items[0].IMEI1)
	require.NotNil(t, s.orders.in.Payment)
	assert.True(t, s.orders.in.Payment.Equal(decimal.NewFromInt(200000)))

	var body dto.OrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "o-1", body.ID)
	assert.True(t, body.RemainingPayment.Equal(decimal.NewFromInt(25000)))
}

func TestCreateOrderHandler_SinToken(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/orders", "-", orderBody)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateOrderHandler_CuerpoInvalido(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/orders", apphttp.RoleCashier, `{"items": [`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)
}

func TestCreateOrderHandler_MapeoDeErrores(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", domain.Invalid(validate.FieldErrors{"items": "required"}), http.StatusBadRequest, domain.CodeValidation},
		{"sin identificador", domain.ErrNoIdentifierSupplied, http.StatusBadRequest, domain.CodeNoIdentifier},
		{"cliente inexistente", domain.NotFound("cliente no encontrado"), http.StatusNotFound, domain.CodeNotFound},
		{"stock insuficiente", domain.ErrInsufficientStock.WithDetail("p-1"), http.StatusConflict, domain.CodeInsufficientStock},
		{"identificadores inconsistentes", domain.ErrInconsistentIdentifiers, http.StatusConflict, domain.CodeInconsistentIdentifiers},
		{"unidad vendida", domain.ErrUnitAlreadySold, http.StatusConflict, domain.CodeUnitAlreadySold},
		{"interno", domain.Internal(errors.New("pg: conexión rechazada")), http.StatusInternalServerError, domain.CodeInternal},
		{"interno sin envolver", errors.New("pg: conexión rechazada"), http.StatusInternalServerError, domain.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.orders.err = tt.err
			resp := s.do(t, http.MethodPost, "/api/orders", apphttp.RoleCashier, orderBody)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Message, "pg:")
		})
	}
}

func TestCreateOrderHandler_ValidacionIncluyeCampos(t *testing.T) {
	s := newTestServer(t)
	s.orders.err = domain.Invalid(validate.FieldErrors{"items": "required", "payment": "required"})
	resp := s.do(t, http.MethodPost, "/api/orders", apphttp.RoleCashier, orderBody)
	defer resp.Body.Close()

	body := decodeError(t, resp)
	assert.Equal(t, map[string]string{"items": "required", "payment": "required"}, body.Fields)
}

func TestGetOrderHandler(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/orders/o-1", apphttp.RoleCashier, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	missing := s.do(t, http.MethodGet, "/api/orders/nada", apphttp.RoleCashier, "")
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestReceiptHandler_DevuelvePDF(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/orders/o-1/receipt", apphttp.RoleCashier, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "orden_o-1.pdf")
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestLookupHandler_LeeQuery(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/inventory/units/lookup?product_id=p-1&warehouse_id=w-1&sn=ABC", apphttp.RoleCashier, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "p-1", s.inventory.query.ProductID)
	assert.Equal(t, "w-1", s.inventory.query.WarehouseID)
	assert.Equal(t, "ABC", s.inventory.query.SN)
}

func TestStockInHandler_SoloAdminOManager(t *testing.T) {
	s := newTestServer(t)
	body := `{"warehouse_id": "w-1", "product_id": "p-1", "units": [{"imei_1": "1"}, {"imei_1": "2"}]}`

	denied := s.do(t, http.MethodPost, "/api/inventory/stock-in", apphttp.RoleCashier, body)
	defer denied.Body.Close()
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)

	ok := s.do(t, http.MethodPost, "/api/inventory/stock-in", apphttp.RoleManager, body)
	defer ok.Body.Close()
	require.Equal(t, http.StatusCreated, ok.StatusCode)

	var out dto.StockInResponse
	require.NoError(t, json.NewDecoder(ok.Body).Decode(&out))
	assert.Equal(t, 2, out.Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuentos
// ──────────────────────────────────────────────────────────────────────────────

func TestDiscountHandler_CrearComoAdmin(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/discounts", apphttp.RoleAdmin, `{"name": "Promo", "type": "fixed", "value": "10000"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.DiscountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, testEmployeeID, out.EmployeeID)
}

func TestDiscountHandler_CajeroNoPuedeCrear(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/discounts", apphttp.RoleCashier, `{"name": "Promo", "type": "fixed", "value": "10000"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDiscountHandler_PatchCampoDesconocido(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPatch, "/api/discounts/d-1", apphttp.RoleAdmin, `{"name": "Nuevo", "employee_id": "otro"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)
}

func TestDiscountHandler_PatchParcial(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPatch, "/api/discounts/d-1", apphttp.RoleAdmin, `{"active": false}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, s.discounts.updated.Active)
	assert.False(t, *s.discounts.updated.Active)
	assert.Nil(t, s.discounts.updated.Name)
}

func TestDiscountHandler_Asignar(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/discounts/d-1/products", apphttp.RoleManager, `{"product_id": "p-1"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Health y rutas desconocidas
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/health", "-", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	app := apphttp.NewApp("test", zerolog.Nop())
	apphttp.Router(app, apphttp.RouterDeps{DB: fakePinger{err: errors.New("down")}, JWTSecret: testJWTSecret, Log: zerolog.Nop()})
	down, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer down.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, down.StatusCode)
}

func TestRutaDesconocida_JSON404(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/nada", "-", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, domain.CodeNotFound, decodeError(t, resp).Code)
}
