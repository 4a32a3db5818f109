package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Nunca se elimina físicamente: Delete lo desactiva para no romper el historial de movimientos.
type Product struct {
	ID            string
	SKU           string // único
	Name          string
	Description   string
	Category      string
	UnitOfMeasure string
	UnitPrice     decimal.Decimal
	ReorderPoint  int64
	MaxStockLevel *int64
	Supplier      string
	IsActive      bool
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
