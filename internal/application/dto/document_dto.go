package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// DocumentLineRequest línea de un documento nuevo. En ajustes la cantidad puede ser negativa.
type DocumentLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity" validate:"ne=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
	Notes     string          `json:"notes" validate:"max=500"`
}

// CreateDocumentRequest body para POST /api/documents.
type CreateDocumentRequest struct {
	DocumentType    string                `json:"document_type" validate:"required,oneof=receipt delivery transfer adjustment"`
	ReferenceNumber string                `json:"reference_number" validate:"max=100"`
	PartnerName     string                `json:"partner_name" validate:"max=200"`
	ScheduledDate   *time.Time            `json:"scheduled_date"`
	WarehouseID     string                `json:"warehouse_id" validate:"omitempty,uuid"`
	Lines           []DocumentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateDocumentStatusRequest body para PATCH /api/documents/:id/status.
// Para validar (done) se indica warehouse_id, o from/to en traslados; si se omiten se usa
// la bodega por defecto del documento.
type UpdateDocumentStatusRequest struct {
	Status          string `json:"status" validate:"required,oneof=draft waiting ready done cancelled"`
	WarehouseID     string `json:"warehouse_id" validate:"omitempty,uuid"`
	FromWarehouseID string `json:"from_warehouse_id" validate:"omitempty,uuid"`
	ToWarehouseID   string `json:"to_warehouse_id" validate:"omitempty,uuid"`
}

// Selector traduce las bodegas del request al selector del dominio:
// from/to presentes → par; warehouse_id → bodega única; nada → nil.
func (r UpdateDocumentStatusRequest) Selector() entity.WarehouseSelector {
	if r.FromWarehouseID != "" || r.ToWarehouseID != "" {
		return entity.WarehousePair{From: r.FromWarehouseID, To: r.ToWarehouseID}
	}
	if r.WarehouseID != "" {
		return entity.SingleWarehouse{ID: r.WarehouseID}
	}
	return nil
}

// DocumentQuery filtros de GET /api/documents.
type DocumentQuery struct {
	Type   string `query:"type" validate:"omitempty,oneof=receipt delivery transfer adjustment"`
	Status string `query:"status" validate:"omitempty,oneof=draft waiting ready done cancelled"`
	Search string `query:"search" validate:"max=100"`
	PageRequest
}

// DocumentLineResponse línea de documento.
type DocumentLineResponse struct {
	ID        string          `json:"id"`
	LineNo    int             `json:"line_no"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes,omitempty"`
}

// DocumentResponse salida de un documento con sus líneas.
type DocumentResponse struct {
	ID              string                 `json:"id"`
	DocumentNumber  string                 `json:"document_number"`
	DocumentType    string                 `json:"document_type"`
	Status          string                 `json:"status"`
	ReferenceNumber string                 `json:"reference_number,omitempty"`
	PartnerName     string                 `json:"partner_name,omitempty"`
	ScheduledDate   *time.Time             `json:"scheduled_date,omitempty"`
	WarehouseID     string                 `json:"warehouse_id,omitempty"`
	CreatedBy       string                 `json:"created_by"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	ValidatedAt     *time.Time             `json:"validated_at,omitempty"`
	ValidatedBy     string                 `json:"validated_by,omitempty"`
	Total           decimal.Decimal        `json:"total"`
	Lines           []DocumentLineResponse `json:"lines,omitempty"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToDocumentResponse mapea la entidad a su DTO.
func ToDocumentResponse(d *entity.Document) DocumentResponse {
	out := DocumentResponse{
		ID:              d.ID,
		DocumentNumber:  d.DocumentNumber,
		DocumentType:    string(d.DocumentType),
		Status:          string(d.Status),
		ReferenceNumber: d.ReferenceNumber,
		PartnerName:     d.PartnerName,
		ScheduledDate:   d.ScheduledDate,
		WarehouseID:     d.WarehouseID,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		ValidatedAt:     d.ValidatedAt,
		ValidatedBy:     d.ValidatedBy,
		Total:           d.Total(),
	}
	for _, l := range d.Lines {
		out.Lines = append(out.Lines, DocumentLineResponse{
			ID:        l.ID,
			LineNo:    l.LineNo,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Notes:     l.Notes,
		})
	}
	return out
}
