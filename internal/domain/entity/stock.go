package entity

import "time"

// StockLevel stock de un producto en una bodega (par único).
// Invariante: 0 <= QuantityReserved <= QuantityOnHand.
type StockLevel struct {
	ID               string
	ProductID        string
	WarehouseID      string
	QuantityOnHand   int64
	QuantityReserved int64
	UpdatedAt        time.Time
}

// Available devuelve on-hand menos reservado (no se persiste).
func (s StockLevel) Available() int64 {
	return s.QuantityOnHand - s.QuantityReserved
}
