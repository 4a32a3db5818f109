package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	appdocument "github.com/jhoicas/stockflow-api/internal/application/document"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stockflow-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/stockflow-api/internal/infrastructure/redis"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/stockflow-api/internal/interfaces/http"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()

	var (
		repos       repository.Repositories
		txRunner    inventory.TxRunner
		healthCheck func() error
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		repos = store.Repositories()
		txRunner = store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repos = postgres.NewRepositories(pool)
		txRunner = postgres.NewTxRunner(pool)
		healthCheck = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(pingCtx)
		}
	}

	warehouseUC := usecase.NewWarehouseUseCase(repos.Warehouses)
	seedWarehouses(ctx, cfg, warehouseUC, log)

	// Lock de numeración opcional: sin Redis la restricción única decide.
	var workflowOpts []appdocument.Option
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible; numeración sin lock")
		} else {
			defer client.Close()
			locker := infraredis.NewSequenceLocker(client, 2*time.Second, log.Component("redislock"))
			workflowOpts = append(workflowOpts,
				appdocument.WithSequenceLocker(locker, time.Duration(cfg.Redis.LockTTLSeconds)*time.Second))
		}
	}

	workflowUC := appdocument.NewWorkflowUseCase(txRunner, repos, log.Component("document"), workflowOpts...)
	documentPDFUC := appdocument.NewPDFUseCase(repos, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))
	stockUC := inventory.NewStockUseCase(
		txRunner, repos.Stock, repos.Movements, repos.Products, repos.Warehouses,
		report.NewExcelMovementExporter(), log.Component("stock"),
	)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Stock)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Stock)

	app := httpRouter.NewApp(cfg.App.Name, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    "StockFlow API",
			}))
		} else {
			log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger no encontrado; /docs deshabilitado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		DocumentUC:    workflowUC,
		DocumentPDF:   documentPDFUC,
		ProductUC:     productUC,
		WarehouseUC:   warehouseUC,
		StockUC:       stockUC,
		Replenishment: replenishmentUC,
		JWTSecret:     cfg.JWT.Secret,
		ServiceName:   cfg.App.Name,
		HealthCheck:   healthCheck,
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

// seedWarehouses registra las bodegas de SEED_WAREHOUSES. En memoria, sin semilla, crea una principal.
func seedWarehouses(ctx context.Context, cfg *config.Config, uc *usecase.WarehouseUseCase, log *logger.Logger) {
	seeds := cfg.Storage.Warehouses()
	if len(seeds) == 0 && cfg.Storage.Driver == config.StorageDriverMemory {
		seeds = []config.WarehouseSeed{{Code: "PRI", Name: "Bodega principal"}}
	}
	for _, s := range seeds {
		w, err := uc.Register(ctx, s.Code, s.Name, "")
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			continue
		case err != nil:
			log.Fatal().Err(err).Str("code", s.Code).Msg("registrar bodega")
		}
		log.Info().Str("warehouse_id", w.ID).Str("code", w.Code).Msg("bodega registrada")
	}
}
