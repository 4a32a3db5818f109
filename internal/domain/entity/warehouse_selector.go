package entity

// WarehouseSelector indica sobre qué bodega(s) se aplica un documento al validarlo.
// Es una variante cerrada: SingleWarehouse o WarehousePair.
type WarehouseSelector interface {
	isWarehouseSelector()
}

// SingleWarehouse una sola bodega: destino en recepciones, origen en despachos, la bodega ajustada en ajustes.
type SingleWarehouse struct {
	ID string
}

// WarehousePair origen y destino de un traslado.
type WarehousePair struct {
	From string
	To   string
}

func (SingleWarehouse) isWarehouseSelector() {}
func (WarehousePair) isWarehouseSelector()   {}
