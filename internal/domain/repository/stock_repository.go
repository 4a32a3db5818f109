package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ReplenishmentItem resultado crudo del repositorio para un producto en o bajo su punto de reorden.
type ReplenishmentItem struct {
	ProductID     string
	SKU           string
	ProductName   string
	OnHand        int64
	Available     int64
	ReorderPoint  int64
	MaxStockLevel *int64
	UnitPrice     decimal.Decimal
}

// StockRepository define el puerto del stock por producto+bodega.
// Todas las mutaciones son incrementos/decrementos atómicos en la base, nunca leer-modificar-escribir.
type StockRepository interface {
	// Get devuelve (nil, nil) si no existe la fila.
	Get(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error)
	// Increase suma a quantity_on_hand; crea la fila con reserved=0 si no existe.
	Increase(ctx context.Context, productID, warehouseID string, qty int64) error
	// Decrease resta qty de on-hand y de reserved (reserved no baja de cero).
	// domain.ErrNotFound si no hay fila, domain.ErrInsufficientStock si on-hand quedaría negativo.
	Decrease(ctx context.Context, productID, warehouseID string, qty int64) error
	// Reserve suma qty a reserved si hay disponible suficiente.
	// domain.ErrNotFound si no hay fila, domain.ErrInsufficientStock si available < qty.
	Reserve(ctx context.Context, productID, warehouseID string, qty int64) error
	// Release resta qty de reserved sin bajar de cero. No falla si no hay fila.
	Release(ctx context.Context, productID, warehouseID string, qty int64) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error)
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLevel, error)
	// ListBelowReorderPoint productos activos cuyo disponible total (todas las bodegas) es <= reorder_point.
	ListBelowReorderPoint(ctx context.Context) ([]ReplenishmentItem, error)
}
