// seed carga datos de demostración: clientes, bodegas, medios de pago, empleados,
// productos y sus unidades. Imprime un token de desarrollo por empleado.
//
// Uso: go run ./cmd/seed [-file db/seed/demo.json] [-token-ttl 12h]
// La conexión se toma de la misma configuración que la API (DATABASE_URL, DB_HOST, ...).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
	"github.com/wasitemo/store-management-sub000/internal/application/inventory"
	"github.com/wasitemo/store-management-sub000/internal/domain"
	"github.com/wasitemo/store-management-sub000/internal/domain/entity"
	dominv "github.com/wasitemo/store-management-sub000/internal/domain/inventory"
	"github.com/wasitemo/store-management-sub000/internal/infrastructure/postgres"
	"github.com/wasitemo/store-management-sub000/pkg/config"
	"github.com/wasitemo/store-management-sub000/pkg/jwt"
	"github.com/wasitemo/store-management-sub000/pkg/logger"
)

type seedFile struct {
	Customers      []entity.Customer      `json:"customers"`
	Warehouses     []entity.Warehouse     `json:"warehouses"`
	PaymentMethods []entity.PaymentMethod `json:"payment_methods"`
	Employees      []entity.Employee      `json:"employees"`
	Products       []seedProduct          `json:"products"`
}

type seedProduct struct {
	ID        string                            `json:"id"`
	Name      string                            `json:"name"`
	Variant   string                            `json:"variant"`
	Price     decimal.Decimal                   `json:"price"`
	HasSerial bool                              `json:"has_serial"`
	Barcode   string                            `json:"barcode"`
	Units     map[string][]dto.StockInUnitInput `json:"units"` // bodega -> unidades
}

func main() {
	var (
		file     string
		tokenTTL time.Duration
	)
	flag.StringVar(&file, "file", "db/seed/demo.json", "archivo JSON con los datos de demostración")
	flag.DurationVar(&tokenTTL, "token-ttl", 12*time.Hour, "vigencia de los tokens impresos")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, file, tokenTTL, log.Component("seed")); err != nil {
		log.Fatal().Err(err).Msg("seed falló")
	}
	log.Info().Msg("seed completado")
}

func run(ctx context.Context, cfg *config.Config, file string, tokenTTL time.Duration, log zerolog.Logger) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrap(err, "leer archivo")
	}
	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return errors.Wrap(err, "decodificar JSON")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return err
	}

	seeder := postgres.NewSeeder(pool)
	for _, c := range data.Customers {
		if err := seeder.UpsertCustomer(ctx, c); err != nil {
			return err
		}
	}
	for _, w := range data.Warehouses {
		if err := seeder.UpsertWarehouse(ctx, w); err != nil {
			return err
		}
	}
	for _, p := range data.PaymentMethods {
		if err := seeder.UpsertPaymentMethod(ctx, p); err != nil {
			return err
		}
	}
	for _, e := range data.Employees {
		if err := seeder.UpsertEmployee(ctx, e); err != nil {
			return err
		}
	}

	runner := postgres.NewTxRunner(pool, postgres.TxOptions{
		StatementTimeout: cfg.DB.StatementTimeout,
		LockTimeout:      cfg.DB.LockTimeout,
		MaxRetries:       cfg.DB.TxMaxRetries,
	}, log)
	stockIn := inventory.NewStockInUseCase(runner, log)

	for _, p := range data.Products {
		err := seeder.UpsertProduct(ctx, entity.Product{
			ID: p.ID, Name: p.Name, Variant: p.Variant, Price: p.Price,
			HasSerial: p.HasSerial, Barcode: dominv.Normalize(p.Barcode),
		})
		if err != nil {
			return err
		}
		for warehouseID, units := range p.Units {
			resp, err := stockIn.StockIn(ctx, "seed", dto.StockInRequest{WarehouseID: warehouseID, ProductID: p.ID, Units: units})
			if errors.Is(err, domain.ErrDuplicateIdentifier) {
				// Ya cargado en una corrida anterior.
				log.Info().Str("product_id", p.ID).Str("warehouse_id", warehouseID).Msg("unidades ya existentes, se omiten")
				continue
			}
			if err != nil {
				return errors.Wrapf(err, "ingresar unidades de %s", p.ID)
			}
			log.Info().Str("product_id", p.ID).Str("warehouse_id", warehouseID).Int("stock", resp.Stock).Msg("unidades ingresadas")
		}
	}

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: no se imprimen tokens")
		return nil
	}
	for _, e := range data.Employees {
		tok, err := jwt.Generate(cfg.JWT.Secret, e.ID, e.Role, cfg.JWT.Issuer, tokenTTL)
		if err != nil {
			return errors.Wrap(err, "generar token")
		}
		fmt.Printf("%s (%s): %s\n", e.ID, e.Role, tok)
	}
	return nil
}
