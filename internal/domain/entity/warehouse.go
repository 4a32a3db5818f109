package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
// Una vez referenciada por stock o movimientos solo cambian sus campos descriptivos.
type Warehouse struct {
	ID           string
	Code         string // único
	Name         string
	Address      string
	Capacity     *int64
	ContactName  string
	ContactPhone string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
