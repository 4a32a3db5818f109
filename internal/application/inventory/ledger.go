package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// Ledger mantiene las cantidades por producto+bodega y el kardex de movimientos.
// Opera sobre los repositorios que recibe: para atomicidad, construirlo con los repos de una transacción.
type Ledger struct {
	stock     repository.StockRepository
	movements repository.StockMovementRepository
	now       func() time.Time
}

// NewLedger construye el ledger sobre los repositorios dados (pool o tx).
func NewLedger(stock repository.StockRepository, movements repository.StockMovementRepository) *Ledger {
	return &Ledger{stock: stock, movements: movements, now: time.Now}
}

// LedgerFor construye un ledger atado a los repositorios de una transacción.
func LedgerFor(repos repository.Repositories) *Ledger {
	return NewLedger(repos.Stock, repos.Movements)
}

// CheckAvailability indica si hay al menos qty disponibles (on-hand - reservado).
// Si no existe fila de stock devuelve false, no error.
func (l *Ledger) CheckAvailability(ctx context.Context, productID, warehouseID string, qty int64) (bool, error) {
	level, err := l.stock.Get(ctx, productID, warehouseID)
	if err != nil {
		return false, err
	}
	if level == nil {
		return false, nil
	}
	return level.Available() >= qty, nil
}

// ReserveStock compromete qty unidades para una salida futura.
func (l *Ledger) ReserveStock(ctx context.Context, productID, warehouseID string, qty int64) error {
	if qty <= 0 {
		return fmt.Errorf("%w: la cantidad a reservar debe ser mayor que cero", domain.ErrValidation)
	}
	return l.stock.Reserve(ctx, productID, warehouseID, qty)
}

// ReleaseReservedStock libera una reserva. Es best-effort: no falla si no existe la fila
// y el reservado nunca baja de cero.
func (l *Ledger) ReleaseReservedStock(ctx context.Context, productID, warehouseID string, qty int64) error {
	if qty <= 0 {
		return fmt.Errorf("%w: la cantidad a liberar debe ser mayor que cero", domain.ErrValidation)
	}
	return l.stock.Release(ctx, productID, warehouseID, qty)
}

// UpdateStock aplica una variación de stock según el tipo de documento:
//   - receipt:    suma qty a on-hand (crea la fila si no existe)
//   - delivery:   resta qty de on-hand y de reservado
//   - adjustment: qty >= 0 suma; qty < 0 resta |qty| como una salida
//
// Una salida siempre consume reservado junto con on-hand.
func (l *Ledger) UpdateStock(ctx context.Context, kind entity.DocumentType, productID, warehouseID string, qty int64) error {
	switch kind {
	case entity.DocumentTypeReceipt:
		if qty < 0 {
			return fmt.Errorf("%w: cantidad negativa en recepción", domain.ErrValidation)
		}
		return l.stock.Increase(ctx, productID, warehouseID, qty)
	case entity.DocumentTypeDelivery:
		if qty < 0 {
			return fmt.Errorf("%w: cantidad negativa en despacho", domain.ErrValidation)
		}
		return l.stock.Decrease(ctx, productID, warehouseID, qty)
	case entity.DocumentTypeAdjustment:
		if qty >= 0 {
			return l.stock.Increase(ctx, productID, warehouseID, qty)
		}
		return l.stock.Decrease(ctx, productID, warehouseID, -qty)
	}
	return fmt.Errorf("%w: tipo de actualización de stock %q", domain.ErrValidation, kind)
}

// RecordMovement agrega un registro inmutable al kardex.
func (l *Ledger) RecordMovement(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = l.now()
	}
	return l.movements.Create(ctx, movement)
}
