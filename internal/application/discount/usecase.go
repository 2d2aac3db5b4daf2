package discount

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
	"github.com/wasitemo/store-management-sub000/pkg/validate"
)

var hundred = decimal.NewFromInt(100)

// TxRunner ejecuta fn dentro de una transacción con los repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error
}

// UseCase administra descuentos y su asignación a productos.
type UseCase struct {
	tx  TxRunner
	log zerolog.Logger
	now func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, log: log, now: time.Now}
}

// Create registra un descuento a nombre del empleado autenticado.
func (uc *UseCase) Create(ctx context.Context, employeeID string, in dto.CreateDiscountRequest) (*dto.DiscountResponse, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	d := &entity.Discount{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Name:       strings.TrimSpace(in.Name),
		Type:       in.Type,
		Value:      *in.Value,
		StartsAt:   in.StartsAt,
		EndsAt:     in.EndsAt,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Active != nil {
		d.Active = *in.Active
	}
	if err := checkRules(d); err != nil {
		return nil, err
	}

	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		emp, err := repos.MasterData.GetEmployee(ctx, employeeID)
		if err != nil {
			return errors.Wrap(err, "buscar empleado")
		}
		if emp == nil {
			return domain.NotFound("empleado no encontrado")
		}
		return repos.Discounts.Create(ctx, d)
	})
	if err != nil {
		return nil, uc.fail(err, "crear descuento")
	}
	uc.log.Info().Str("discount_id", d.ID).Str("employee_id", employeeID).Msg("descuento creado")
	return toResponse(d), nil
}

// Update aplica un PATCH tipado: solo se tocan los campos presentes.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateDiscountRequest) (*dto.DiscountResponse, error) {
	if in.IsEmpty() {
		return nil, domain.Validation("no hay campos para actualizar")
	}
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	var out *entity.Discount
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		d, err := repos.Discounts.GetByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "buscar descuento")
		}
		if d == nil {
			return domain.NotFound("descuento no encontrado")
		}
		if in.Name != nil {
			d.Name = strings.TrimSpace(*in.Name)
		}
		if in.Type != nil {
			d.Type = *in.Type
		}
		if in.Value != nil {
			d.Value = *in.Value
		}
		if in.StartsAt != nil {
			d.StartsAt = in.StartsAt
		}
		if in.EndsAt != nil {
			d.EndsAt = in.EndsAt
		}
		if in.Active != nil {
			d.Active = *in.Active
		}
		if err := checkRules(d); err != nil {
			return err
		}
		d.UpdatedAt = uc.now()
		if err := repos.Discounts.Update(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, uc.fail(err, "actualizar descuento")
	}
	return toResponse(out), nil
}

// AssignToProduct asigna el descuento a un producto como descuento por ítem. Es idempotente.
func (uc *UseCase) AssignToProduct(ctx context.Context, discountID string, in dto.AssignDiscountRequest) error {
	if err := checkStruct(in); err != nil {
		return err
	}
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		d, err := repos.Discounts.GetByID(ctx, discountID)
		if err != nil {
			return errors.Wrap(err, "buscar descuento")
		}
		if d == nil {
			return domain.NotFound("descuento no encontrado")
		}
		p, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return errors.Wrap(err, "buscar producto")
		}
		if p == nil {
			return domain.NotFound("producto no encontrado")
		}
		return repos.Discounts.AssignToProduct(ctx, p.ID, d.ID)
	})
	if err != nil {
		return uc.fail(err, "asignar descuento")
	}
	return nil
}

func (uc *UseCase) fail(err error, op string) error {
	if domain.KindOf(err) == domain.ErrInternal {
		uc.log.Error().Err(err).Str("op", op).Msg("descuentos: error interno")
		return domain.Internal(err)
	}
	return err
}

func checkStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		return domain.Invalid(fe)
	}
	return domain.Internal(err)
}

// checkRules valida el descuento ya combinado con el PATCH.
func checkRules(d *entity.Discount) error {
	switch {
	case d.Name == "":
		return domain.Validation("name no puede quedar vacío")
	case d.Value.IsNegative():
		return domain.Validation("value no puede ser negativo")
	case d.Type == entity.DiscountTypePercentage && d.Value.GreaterThan(hundred):
		return domain.Validation("un porcentaje no puede superar 100")
	case d.StartsAt != nil && d.EndsAt != nil && d.EndsAt.Before(*d.StartsAt):
		return domain.Validation("ends_at debe ser posterior a starts_at")
	}
	return nil
}

func toResponse(d *entity.Discount) *dto.DiscountResponse {
	return &dto.DiscountResponse{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		Name:       d.Name,
		Type:       d.Type,
		Value:      d.Value,
		StartsAt:   d.StartsAt,
		EndsAt:     d.EndsAt,
		Active:     d.Active,
	}
}
