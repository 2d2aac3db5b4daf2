package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/wasitemo/store-management-sub000/internal/application/dto"
)

// Pinger comprueba la conexión a la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateOrder OrderCreator
	Orders      OrderQuerier
	StockIn     StockInRegistrar
	Lookup      UnitLooker
	Discounts   DiscountManager
	DB          Pinger
	JWTSecret   string
	JWTIssuer   string
	Log         zerolog.Logger
}

// NewApp construye la aplicación Fiber con recover y el manejador de errores común.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: NewErrorHandler(log),
	})
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.DB))

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Caja: cualquier empleado autenticado
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.Orders, deps.Log)
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	inventoryHandler := NewInventoryHandler(deps.StockIn, deps.Lookup, deps.Log)
	inv := api.Group("/inventory")
	inv.Get("/units/lookup", inventoryHandler.Lookup)
	inv.Post("/stock-in", RequireRole(RoleAdmin, RoleManager), inventoryHandler.StockIn)

	discountHandler := NewDiscountHandler(deps.Discounts, deps.Log)
	discounts := api.Group("/discounts", RequireRole(RoleAdmin, RoleManager))
	discounts.Post("/", discountHandler.Create)
	discounts.Patch("/:id", discountHandler.Update)
	discounts.Post("/:id/products", discountHandler.AssignToProduct)
}

func healthHandler(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.JSON(dto.HealthResponse{Status: "ok", Database: "n/a"})
		}
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Database: "down"})
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Database: "up"})
	}
}
