package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevelResponse stock de un producto en una bodega.
type StockLevelResponse struct {
	ProductID        string    `json:"product_id"`
	WarehouseID      string    `json:"warehouse_id"`
	QuantityOnHand   int64     `json:"quantity_on_hand"`
	QuantityReserved int64     `json:"quantity_reserved"`
	Available        int64     `json:"available"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AvailabilityQuery parámetros de GET /api/stock/availability.
type AvailabilityQuery struct {
	ProductID   string `query:"product_id" validate:"required,uuid"`
	WarehouseID string `query:"warehouse_id" validate:"required,uuid"`
	Quantity    int64  `query:"quantity" validate:"required,gt=0"`
}

// AvailabilityResponse respuesta de disponibilidad.
type AvailabilityResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	Available   bool   `json:"available"`
}

// ReservationRequest body para reservar o liberar stock.
type ReservationRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid"`
	WarehouseID string `json:"warehouse_id" validate:"required,uuid"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
}

// MovementQuery filtros de GET /api/movements (fechas en RFC3339 o YYYY-MM-DD).
type MovementQuery struct {
	ProductID   string `query:"product_id" validate:"omitempty,uuid"`
	WarehouseID string `query:"warehouse_id" validate:"omitempty,uuid"`
	DocumentID  string `query:"document_id" validate:"omitempty,uuid"`
	From        string `query:"from"`
	To          string `query:"to"`
	PageRequest
}

// MovementResponse registro del kardex.
type MovementResponse struct {
	ID              string          `json:"id"`
	MovementType    string          `json:"movement_type"`
	DocumentID      string          `json:"document_id"`
	ProductID       string          `json:"product_id"`
	FromWarehouseID string          `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   string          `json:"to_warehouse_id,omitempty"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ReferenceNumber string          `json:"reference_number"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LowStockItemDTO producto con disponible en o bajo su punto de reorden.
type LowStockItemDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	OnHand             int64           `json:"on_hand"`
	Available          int64           `json:"available"`
	ReorderPoint       int64           `json:"reorder_point"`
	MaxStockLevel      *int64          `json:"max_stock_level,omitempty"`
	Deficit            int64           `json:"deficit"`             // ReorderPoint - Available
	SuggestedOrderQty  int64           `json:"suggested_order_qty"` // hasta MaxStockLevel o ReorderPoint*1.5
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
