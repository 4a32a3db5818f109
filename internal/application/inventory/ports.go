package inventory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para el ledger y el flujo de documentos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// MovementExporter genera un archivo descargable con movimientos del kardex.
type MovementExporter interface {
	ExportMovements(ctx context.Context, movements []*entity.StockMovement) ([]byte, error)
}
