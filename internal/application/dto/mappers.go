package dto

import "github.com/jhoicas/stockflow-api/internal/domain/entity"

// ToProductResponse mapea la entidad a su DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		UnitOfMeasure: p.UnitOfMeasure,
		UnitPrice:     p.UnitPrice,
		ReorderPoint:  p.ReorderPoint,
		MaxStockLevel: p.MaxStockLevel,
		Supplier:      p.Supplier,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToStockLevelResponse mapea un nivel de stock.
func ToStockLevelResponse(s *entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ProductID:        s.ProductID,
		WarehouseID:      s.WarehouseID,
		QuantityOnHand:   s.QuantityOnHand,
		QuantityReserved: s.QuantityReserved,
		Available:        s.Available(),
		UpdatedAt:        s.UpdatedAt,
	}
}

// ToMovementResponse mapea un movimiento del kardex.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		MovementType:    string(m.MovementType),
		DocumentID:      m.DocumentID,
		ProductID:       m.ProductID,
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		ReferenceNumber: m.ReferenceNumber,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}
