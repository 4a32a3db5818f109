package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// DocumentFilter filtros de listado de documentos. Search busca (sin distinguir mayúsculas)
// en número de documento, número de referencia y nombre del tercero.
type DocumentFilter struct {
	Type   entity.DocumentType
	Status entity.DocumentStatus
	Search string
	Limit  int // <= 0: sin límite
	Offset int
}

// DocumentRepository define el puerto de persistencia para documentos y sus líneas.
// GetByID y GetForUpdate devuelven (nil, nil) si el documento no existe.
type DocumentRepository interface {
	// Create inserta cabecera y líneas. Un número de documento repetido devuelve domain.ErrConflict.
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	// UpdateStatus persiste Status, ValidatedAt, ValidatedBy y UpdatedAt.
	UpdateStatus(ctx context.Context, doc *entity.Document) error
	// Delete elimina la cabecera; las líneas se eliminan en cascada.
	Delete(ctx context.Context, id string) error
	// CountByTypeSince cuenta documentos del tipo creados desde since (inclusive).
	CountByTypeSince(ctx context.Context, t entity.DocumentType, since time.Time) (int, error)
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, int, error)
}
