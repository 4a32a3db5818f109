package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del kardex.
type MovementType string

const (
	MovementTypeIN         MovementType = "IN"         // entrada
	MovementTypeOUT        MovementType = "OUT"        // salida
	MovementTypeTRANSFER   MovementType = "TRANSFER"   // traslado entre bodegas
	MovementTypeADJUSTMENT MovementType = "ADJUSTMENT" // ajuste; la dirección la da from/to
)

// StockMovement registro inmutable de una cantidad movida por una línea de documento.
// Quantity siempre es positiva: la dirección se expresa con Type y From/To.
type StockMovement struct {
	ID              string
	MovementType    MovementType
	DocumentID      string
	ProductID       string
	FromWarehouseID string // vacío si no aplica
	ToWarehouseID   string // vacío si no aplica
	Quantity        int64
	UnitPrice       decimal.Decimal
	ReferenceNumber string
	CreatedBy       string
	CreatedAt       time.Time
}
