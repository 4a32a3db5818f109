package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	appdocument "github.com/jhoicas/stockflow-api/internal/application/document"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DocumentUC    *appdocument.WorkflowUseCase
	DocumentPDF   *appdocument.PDFUseCase
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	StockUC       *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	JWTSecret     string
	ServiceName   string
	HealthCheck   func() error // opcional: ping a la base
}

// NewApp crea la aplicación Fiber con recover y log de peticiones.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	return app
}

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return err
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": deps.ServiceName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Todas las rutas de /api requieren Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(entity.RoleManager, entity.RoleAdmin)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Documents
	documents := api.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.DocumentPDF)
	documents.Get("/", documentHandler.List)
	documents.Post("/", writers, documentHandler.Create)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Patch("/:id/status", writers, documentHandler.UpdateStatus)
	documents.Delete("/:id", adminOnly, documentHandler.Delete)
	documents.Get("/:id/pdf", documentHandler.DownloadPDF)

	// Products (low-stock antes de /:id)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Replenishment)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Post("/", writers, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", writers, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/products/:id", stockHandler.ByProduct)
	stock.Get("/warehouses/:id", stockHandler.ByWarehouse)
	stock.Get("/availability", stockHandler.Availability)
	stock.Post("/reservations", writers, stockHandler.Reserve)
	stock.Post("/reservations/release", writers, stockHandler.Release)

	// Movements
	movements := api.Group("/movements")
	movements.Get("/", stockHandler.Movements)
	movements.Get("/export", stockHandler.ExportMovements)

	// Warehouses (solo lectura)
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
}
