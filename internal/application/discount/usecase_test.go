package discount_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasitemo/store-management-sub000/internal/application/discount"
	"github.com/wasitemo/store-management-sub000/internal/application/dto"
	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/testutil/memstore"
)

func ptr[T any](v T) *T { return &v }

func newStore() *memstore.Store {
	s := memstore.New()
	s.AddMasterData("c1", "w1", "pm1", "emp-1")
	s.AddProduct(&entity.Product{ID: "p1", Name: "Teléfono", Price: decimal.NewFromInt(100_000)})
	return s
}

func TestCreate_ActivoPorDefecto(t *testing.T) {
	s := newStore()
	uc := discount.NewUseCase(s, zerolog.Nop())

	got, err := uc.Create(context.Background(), "emp-1", dto.CreateDiscountRequest{
		Name:  " Temporada ",
		Type:  entity.DiscountTypePercentage,
		Value: ptr(decimal.NewFromInt(15)),
	})
	require.NoError(t, err)

	assert.True(t, got.Active)
	assert.Equal(t, "Temporada", got.Name)
	assert.Equal(t, "emp-1", got.EmployeeID)
	assert.Contains(t, s.Discounts, got.ID)
}

func TestCreate_Validaciones(t *testing.T) {
	s := newStore()
	uc := discount.NewUseCase(s, zerolog.Nop())
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	cases := []struct {
		name string
		in   dto.CreateDiscountRequest
	}{
		{"tipo desconocido", dto.CreateDiscountRequest{Name: "x", Type: "bogo", Value: ptr(decimal.NewFromInt(1))}},
		{"sin valor", dto.CreateDiscountRequest{Name: "x", Type: entity.DiscountTypeFixed}},
		{"negativo", dto.CreateDiscountRequest{Name: "x", Type: entity.DiscountTypeFixed, Value: ptr(decimal.NewFromInt(-1))}},
		{"porcentaje > 100", dto.CreateDiscountRequest{Name: "x", Type: entity.DiscountTypePercentage, Value: ptr(decimal.NewFromInt(101))}},
		{"ventana invertida", dto.CreateDiscountRequest{Name: "x", Type: entity.DiscountTypeFixed, Value: ptr(decimal.NewFromInt(1)), StartsAt: &start, EndsAt: &end}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), "emp-1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreate_EmpleadoInexistente(t *testing.T) {
	_, err := discount.NewUseCase(newStore(), zerolog.Nop()).Create(context.Background(), "emp-x", dto.CreateDiscountRequest{
		Name: "x", Type: entity.DiscountTypeFixed, Value: ptr(decimal.NewFromInt(1)),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_SoloCamposPresentes(t *testing.T) {
	s := newStore()
	s.AddDiscount(&entity.Discount{ID: "d1", Name: "Original", Type: entity.DiscountTypeFixed, Value: decimal.NewFromInt(5_000), Active: true})
	uc := discount.NewUseCase(s, zerolog.Nop())

	got, err := uc.Update(context.Background(), "d1", dto.UpdateDiscountRequest{Active: ptr(false)})
	require.NoError(t, err)

	assert.False(t, got.Active)
	assert.Equal(t, "Original", got.Name)
	assert.True(t, got.Value.Equal(decimal.NewFromInt(5_000)))
}

func TestUpdate_Errores(t *testing.T) {
	s := newStore()
	s.AddDiscount(&entity.Discount{ID: "d1", Name: "Original", Type: entity.DiscountTypeFixed, Value: decimal.NewFromInt(500), Active: true})
	uc := discount.NewUseCase(s, zerolog.Nop())

	_, err := uc.Update(context.Background(), "d1", dto.UpdateDiscountRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "PATCH vacío")

	_, err = uc.Update(context.Background(), "nope", dto.UpdateDiscountRequest{Active: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Pasar a porcentaje con valor 500 rompe la regla combinada y no se guarda.
	_, err = uc.Update(context.Background(), "d1", dto.UpdateDiscountRequest{Type: ptr(entity.DiscountTypePercentage)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.DiscountTypeFixed, s.Discounts["d1"].Type)
}

func TestAssignToProduct(t *testing.T) {
	s := newStore()
	s.AddDiscount(&entity.Discount{ID: "d1", Name: "x", Type: entity.DiscountTypeFixed, Value: decimal.NewFromInt(1), Active: true})
	uc := discount.NewUseCase(s, zerolog.Nop())

	require.NoError(t, uc.AssignToProduct(context.Background(), "d1", dto.AssignDiscountRequest{ProductID: "p1"}))
	require.NoError(t, uc.AssignToProduct(context.Background(), "d1", dto.AssignDiscountRequest{ProductID: "p1"}))
	assert.Equal(t, []string{"d1"}, s.ItemDiscounts["p1"])

	err := uc.AssignToProduct(context.Background(), "d1", dto.AssignDiscountRequest{ProductID: "p9"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.AssignToProduct(context.Background(), "d9", dto.AssignDiscountRequest{ProductID: "p1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
