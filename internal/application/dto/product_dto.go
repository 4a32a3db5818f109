package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Category      string          `json:"category" validate:"max=100"`
	UnitOfMeasure string          `json:"unit_of_measure" validate:"required,max=20"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"min=0"`
	ReorderPoint  int64           `json:"reorder_point" validate:"min=0"`
	MaxStockLevel *int64          `json:"max_stock_level" validate:"omitempty,min=0"`
	Supplier      string          `json:"supplier" validate:"max=200"`
}

// UpdateProductRequest entrada para actualizar un producto. El SKU no cambia.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	UnitOfMeasure *string          `json:"unit_of_measure" validate:"omitempty,min=1,max=20"`
	UnitPrice     *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
	ReorderPoint  *int64           `json:"reorder_point" validate:"omitempty,min=0"`
	MaxStockLevel *int64           `json:"max_stock_level" validate:"omitempty,min=0"`
	Supplier      *string          `json:"supplier" validate:"omitempty,max=200"`
}

// ProductQuery filtros de GET /api/products.
type ProductQuery struct {
	Category string `query:"category"`
	Search   string `query:"search"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ReorderPoint  int64           `json:"reorder_point"`
	MaxStockLevel *int64          `json:"max_stock_level,omitempty"`
	Supplier      string          `json:"supplier"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductDetailResponse producto con su stock por bodega.
type ProductDetailResponse struct {
	ProductResponse
	Stock          []StockLevelResponse `json:"stock"`
	TotalOnHand    int64                `json:"total_on_hand"`
	TotalAvailable int64                `json:"total_available"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
