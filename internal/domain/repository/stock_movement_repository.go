package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// MovementFilter filtros del kardex. WarehouseID coincide con origen o destino.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	DocumentID  string
	From        *time.Time
	To          *time.Time
	Limit       int // <= 0: sin límite
	Offset      int
}

// StockMovementRepository define el puerto de persistencia del kardex (solo inserción y lectura).
type StockMovementRepository interface {
	// Create inserta el movimiento. Ids referenciados inexistentes devuelven domain.ErrReferentialIntegrity.
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
