package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ReplenishmentUseCase genera el reporte de productos con stock bajo.
// Considera el disponible total del producto sumando todas las bodegas.
type ReplenishmentUseCase struct {
	stockRepo repository.StockRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(stockRepo repository.StockRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{stockRepo: stockRepo}
}

var idealFactor = decimal.NewFromFloat(1.5)

// LowStock devuelve los productos activos con disponible <= punto de reorden, con la cantidad
// sugerida de pedido. Orden: mayor déficit primero, luego SKU; Priority 1 = más urgente.
func (uc *ReplenishmentUseCase) LowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	rawItems, err := uc.stockRepo.ListBelowReorderPoint(ctx)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.LowStockItemDTO{}, nil
	}

	items := make([]dto.LowStockItemDTO, 0, len(rawItems))
	for _, raw := range rawItems {
		suggested := SuggestedOrderQty(raw)
		items = append(items, dto.LowStockItemDTO{
			ProductID:          raw.ProductID,
			SKU:                raw.SKU,
			ProductName:        raw.ProductName,
			OnHand:             raw.OnHand,
			Available:          raw.Available,
			ReorderPoint:       raw.ReorderPoint,
			MaxStockLevel:      raw.MaxStockLevel,
			Deficit:            raw.ReorderPoint - raw.Available,
			SuggestedOrderQty:  suggested,
			UnitPrice:          raw.UnitPrice,
			EstimatedOrderCost: raw.UnitPrice.Mul(decimal.NewFromInt(suggested)),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Deficit != items[j].Deficit {
			return items[i].Deficit > items[j].Deficit
		}
		return items[i].SKU < items[j].SKU
	})
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}

// SuggestedOrderQty cantidad a pedir para llegar al stock máximo, o a 1.5 veces el punto de
// reorden si el producto no tiene máximo. Nunca negativa.
func SuggestedOrderQty(item repository.ReplenishmentItem) int64 {
	var target int64
	if item.MaxStockLevel != nil {
		target = *item.MaxStockLevel
	} else {
		target = decimal.NewFromInt(item.ReorderPoint).Mul(idealFactor).Ceil().IntPart()
	}
	if qty := target - item.Available; qty > 0 {
		return qty
	}
	return 0
}
