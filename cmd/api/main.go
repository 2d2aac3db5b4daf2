package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/wasitemo/store-management-sub000/internal/application/discount"
	"github.com/wasitemo/store-management-sub000/internal/application/inventory"
	"github.com/wasitemo/store-management-sub000/internal/application/order"
	infrapdf "github.com/wasitemo/store-management-sub000/internal/infrastructure/pdf"
	"github.com/wasitemo/store-management-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/wasitemo/store-management-sub000/internal/interfaces/http"
	"github.com/wasitemo/store-management-sub000/pkg/config"
	"github.com/wasitemo/store-management-sub000/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("enforce_discount_window", cfg.Order.EnforceDiscountWindow).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: todas las rutas /api responderán 401")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.RunMigrations {
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	txRunner := postgres.NewTxRunner(pool, postgres.TxOptions{
		StatementTimeout: cfg.DB.StatementTimeout,
		LockTimeout:      cfg.DB.LockTimeout,
		MaxRetries:       cfg.DB.TxMaxRetries,
	}, log.Component("postgres"))

	createOrderUC := order.NewCreateOrderUseCase(txRunner, log.Component("order"), order.Options{
		EnforceDiscountWindow: cfg.Order.EnforceDiscountWindow,
	})
	orderQueryUC := order.NewQueryUseCase(txRunner, infrapdf.NewReceiptGenerator(cfg.App.Name))
	stockInUC := inventory.NewStockInUseCase(txRunner, log.Component("inventory"))
	lookupUC := inventory.NewLookupUseCase(txRunner)
	discountUC := discount.NewUseCase(txRunner, log.Component("discount"))

	app := httpRouter.NewApp(cfg.App.Name, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Store Management API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateOrder: createOrderUC,
		Orders:      orderQueryUC,
		StockIn:     stockInUC,
		Lookup:      lookupUC,
		Discounts:   discountUC,
		DB:          pool,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Log:         log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
