package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tipo de documento de inventario.
type DocumentType string

const (
	DocumentTypeReceipt    DocumentType = "receipt"    // recepción de proveedor
	DocumentTypeDelivery   DocumentType = "delivery"   // despacho a cliente
	DocumentTypeTransfer   DocumentType = "transfer"   // traslado entre bodegas
	DocumentTypeAdjustment DocumentType = "adjustment" // ajuste de inventario (cantidad con signo)
)

// Valid indica si el tipo es uno de los cuatro soportados.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeReceipt, DocumentTypeDelivery, DocumentTypeTransfer, DocumentTypeAdjustment:
		return true
	}
	return false
}

// DocumentStatus estado del documento dentro del flujo draft → waiting → ready → done/cancelled.
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusWaiting   DocumentStatus = "waiting"
	DocumentStatusReady     DocumentStatus = "ready"
	DocumentStatusDone      DocumentStatus = "done"
	DocumentStatusCancelled DocumentStatus = "cancelled"
)

// Document cabecera de un documento de inventario. Es dueño exclusivo de sus líneas.
// ValidatedAt/ValidatedBy solo se llenan al pasar a done.
type Document struct {
	ID              string
	DocumentNumber  string // RCP-2025-001
	DocumentType    DocumentType
	Status          DocumentStatus
	ReferenceNumber string
	PartnerName     string
	ScheduledDate   *time.Time
	WarehouseID     string // bodega por defecto al validar (opcional)
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ValidatedAt     *time.Time
	ValidatedBy     string
	Lines           []DocumentLine
}

// DocumentLine línea de un documento. Inmutable después de crear el documento.
type DocumentLine struct {
	ID         string
	DocumentID string
	LineNo     int
	ProductID  string
	Quantity   int64 // con signo solo en ajustes
	UnitPrice  decimal.Decimal
	Notes      string
}

// Total suma cantidad * precio unitario de todas las líneas (valor absoluto de la cantidad).
func (d *Document) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		q := l.Quantity
		if q < 0 {
			q = -q
		}
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(q)))
	}
	return total
}
