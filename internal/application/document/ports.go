package document

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// SequenceLocker lock distribuido best-effort alrededor de la numeración de documentos.
// release debe poder llamarse siempre; un error en Acquire no impide crear el documento.
type SequenceLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// DocumentLineForPDF línea enriquecida con los datos del producto para el PDF.
type DocumentLineForPDF struct {
	entity.DocumentLine
	SKU           string
	ProductName   string
	UnitOfMeasure string
}

// DocumentPDFData datos completos para imprimir un documento.
type DocumentPDFData struct {
	Document      *entity.Document
	Lines         []DocumentLineForPDF
	WarehouseName string // bodega por defecto, vacío si no tiene
}

// DocumentPDFGenerator genera la representación imprimible de un documento.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, data DocumentPDFData) ([]byte, error)
}
