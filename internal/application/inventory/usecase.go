package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// StockUseCase expone el ledger a los llamadores externos: consultas de stock y kardex,
// reservas y liberaciones (cada una en su propia transacción) y exportación de movimientos.
type StockUseCase struct {
	txRunner      TxRunner
	stockRepo     repository.StockRepository
	movementRepo  repository.StockMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	exporter      MovementExporter
	log           zerolog.Logger
}

// NewStockUseCase construye el caso de uso. exporter puede ser nil si no se exporta el kardex.
func NewStockUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	exporter MovementExporter,
	log zerolog.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		exporter:      exporter,
		log:           log,
	}
}

// ReservationInput entrada para reservar o liberar stock.
type ReservationInput struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	ActorID     string
}

// CheckAvailability indica si hay qty unidades disponibles del producto en la bodega.
func (uc *StockUseCase) CheckAvailability(ctx context.Context, productID, warehouseID string, qty int64) (bool, error) {
	if productID == "" || warehouseID == "" || qty <= 0 {
		return false, domain.ErrValidation
	}
	return NewLedger(uc.stockRepo, uc.movementRepo).CheckAvailability(ctx, productID, warehouseID, qty)
}

// Reserve compromete stock para una salida (transacción propia).
func (uc *StockUseCase) Reserve(ctx context.Context, in ReservationInput) error {
	if in.ProductID == "" || in.WarehouseID == "" {
		return domain.ErrValidation
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		return LedgerFor(repos).ReserveStock(ctx, in.ProductID, in.WarehouseID, in.Quantity)
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("product_id", in.ProductID).
			Str("warehouse_id", in.WarehouseID).
			Int64("quantity", in.Quantity).
			Msg("reserva rechazada")
		return err
	}
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("warehouse_id", in.WarehouseID).
		Int64("quantity", in.Quantity).
		Str("actor_id", in.ActorID).
		Msg("stock reservado")
	return nil
}

// Release libera stock reservado (transacción propia). El reservado no baja de cero.
func (uc *StockUseCase) Release(ctx context.Context, in ReservationInput) error {
	if in.ProductID == "" || in.WarehouseID == "" {
		return domain.ErrValidation
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		return LedgerFor(repos).ReleaseReservedStock(ctx, in.ProductID, in.WarehouseID, in.Quantity)
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("warehouse_id", in.WarehouseID).
		Int64("quantity", in.Quantity).
		Str("actor_id", in.ActorID).
		Msg("reserva liberada")
	return nil
}

// ProductStock devuelve el stock del producto en cada bodega donde tiene fila.
func (uc *StockUseCase) ProductStock(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.stockRepo.ListByProduct(ctx, productID)
}

// WarehouseStock devuelve el stock de una bodega con paginación.
func (uc *StockUseCase) WarehouseStock(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return uc.stockRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
}

// Movements lista el kardex con filtros.
func (uc *StockUseCase) Movements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.movementRepo.List(ctx, filter)
}

// maxExportRows tope de filas por archivo exportado.
const maxExportRows = 10000

// ExportMovements genera el archivo del kardex filtrado y un nombre sugerido.
// Si el filtro abarca más de maxExportRows movimientos devuelve domain.ErrValidation en lugar
// de un archivo incompleto.
func (uc *StockUseCase) ExportMovements(ctx context.Context, filter repository.MovementFilter) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("exportar movimientos: exportador no configurado")
	}
	filter.Limit = maxExportRows + 1
	filter.Offset = 0
	list, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	if len(list) > maxExportRows {
		uc.log.Warn().
			Str("product_id", filter.ProductID).
			Str("warehouse_id", filter.WarehouseID).
			Int("max_rows", maxExportRows).
			Msg("exportación rechazada por exceso de filas")
		return nil, "", fmt.Errorf("%w: más de %d movimientos; acote el rango de fechas o los filtros",
			domain.ErrValidation, maxExportRows)
	}
	data, err := uc.exporter.ExportMovements(ctx, list)
	if err != nil {
		return nil, "", fmt.Errorf("exportar movimientos: %w", err)
	}
	filename := fmt.Sprintf("movimientos-%s.xlsx", time.Now().Format("20060102-150405"))
	return data, filename, nil
}
