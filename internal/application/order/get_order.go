package order

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	"github.com/wasitemo/store-management-sub000/internal/domain/repository"
)

// QueryUseCase consulta órdenes ya registradas y genera su comprobante.
type QueryUseCase struct {
	tx        TxRunner
	generator ReceiptGenerator
}

// NewQueryUseCase construye el caso de uso. generator puede ser nil si no se sirven PDFs.
func NewQueryUseCase(tx TxRunner, generator ReceiptGenerator) *QueryUseCase {
	return &QueryUseCase{tx: tx, generator: generator}
}

// GetOrder devuelve la orden con sus líneas o NotFound.
func (uc *QueryUseCase) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	var resp *dto.OrderResponse
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		o, lines, err := loadOrder(ctx, repos.Orders, orderID)
		if err != nil {
			return err
		}
		resp = toOrderResponse(o, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DownloadReceiptPDF arma el comprobante de la orden y lo renderiza.
// Retorna los bytes y el nombre de archivo sugerido.
func (uc *QueryUseCase) DownloadReceiptPDF(ctx context.Context, orderID string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", domain.Internal(errors.New("generador de PDF no configurado"))
	}

	var receipt *Receipt
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		o, lines, err := loadOrder(ctx, repos.Orders, orderID)
		if err != nil {
			return err
		}
		r := &Receipt{Order: o, Lines: lines}

		// Los datos maestros faltantes no impiden imprimir: el PDF usa el ID como respaldo.
		if r.Customer, err = repos.MasterData.GetCustomer(ctx, o.CustomerID); err != nil {
			return errors.Wrap(err, "comprobante: cliente")
		}
		if r.Warehouse, err = repos.MasterData.GetWarehouse(ctx, o.WarehouseID); err != nil {
			return errors.Wrap(err, "comprobante: bodega")
		}
		if r.PaymentMethod, err = repos.MasterData.GetPaymentMethod(ctx, o.PaymentMethodID); err != nil {
			return errors.Wrap(err, "comprobante: medio de pago")
		}
		if r.Employee, err = repos.MasterData.GetEmployee(ctx, o.EmployeeID); err != nil {
			return errors.Wrap(err, "comprobante: empleado")
		}

		ids := make([]string, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.ProductID)
		}
		if r.Products, err = repos.Products.GetByIDs(ctx, ids); err != nil {
			return errors.Wrap(err, "comprobante: productos")
		}
		receipt = r
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	pdf, err := uc.generator.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, "", domain.Internal(errors.Wrap(err, "generar comprobante"))
	}
	return pdf, fmt.Sprintf("orden_%s.pdf", receipt.Order.ID), nil
}

func loadOrder(ctx context.Context, orders repository.OrderRepository, orderID string) (*entity.Order, []*entity.OrderLine, error) {
	o, err := orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "buscar orden")
	}
	if o == nil {
		return nil, nil, domain.NotFound("orden no encontrada")
	}
	lines, err := orders.ListLines(ctx, orderID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "buscar líneas")
	}
	return o, lines, nil
}

func toOrderResponse(o *entity.Order, lines []*entity.OrderLine) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		WarehouseID:      o.WarehouseID,
		PaymentMethodID:  o.PaymentMethodID,
		EmployeeID:       o.EmployeeID,
		OrderDate:        o.OrderDate,
		Payment:          o.Payment,
		GrandTotal:       o.GrandTotal,
		ItemDiscount:     decimal.Zero,
		OrderDiscount:    o.OrderDiscount,
		SubTotal:         o.SubTotal,
		RemainingPayment: o.RemainingPayment,
		DiscountIDs:      o.DiscountIDs,
		Lines:            make([]dto.OrderLineResponse, 0, len(lines)),
	}
	if resp.DiscountIDs == nil {
		resp.DiscountIDs = []string{}
	}
	for _, l := range lines {
		resp.ItemDiscount = resp.ItemDiscount.Add(l.ItemDiscount)
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ID:              l.ID,
			ProductID:       l.ProductID,
			WarehouseID:     l.WarehouseID,
			InventoryUnitID: l.InventoryUnitID,
			IMEI1:           l.IMEI1,
			IMEI2:           l.IMEI2,
			SN:              l.SerialNumber,
			Barcode:         l.Barcode,
			Price:           l.Price,
			ItemDiscount:    l.ItemDiscount,
			OrderDiscount:   l.OrderDiscount,
			LineTotal:       l.LineTotal,
		})
	}
	return resp
}
