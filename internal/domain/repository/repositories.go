package repository

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Documents  DocumentRepository
	Stock      StockRepository
	Movements  StockMovementRepository
	Products   ProductRepository
	Warehouses WarehouseRepository
}
