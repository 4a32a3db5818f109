package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo niveles de stock en memoria con la misma semántica que las sentencias SQL.
type StockRepo struct {
	sc *scope
}

func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.sc.read(func(st *state) error {
		if l, ok := st.stock[stockKey{productID, warehouseID}]; ok {
			cp := *l
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) Increase(ctx context.Context, productID, warehouseID string, qty int64) error {
	return r.sc.write(func(st *state) error {
		key := stockKey{productID, warehouseID}
		if l, ok := st.stock[key]; ok {
			l.QuantityOnHand += qty
			l.UpdatedAt = r.sc.now()
			return nil
		}
		if _, ok := st.products[productID]; !ok {
			return fmt.Errorf("%w: producto %s", domain.ErrReferentialIntegrity, productID)
		}
		if _, ok := st.warehouses[warehouseID]; !ok {
			return fmt.Errorf("%w: bodega %s", domain.ErrReferentialIntegrity, warehouseID)
		}
		st.stock[key] = &entity.StockLevel{
			ID:             uuid.New().String(),
			ProductID:      productID,
			WarehouseID:    warehouseID,
			QuantityOnHand: qty,
			UpdatedAt:      r.sc.now(),
		}
		return nil
	})
}

func (r *StockRepo) Decrease(ctx context.Context, productID, warehouseID string, qty int64) error {
	return r.sc.write(func(st *state) error {
		l, ok := st.stock[stockKey{productID, warehouseID}]
		if !ok {
			return fmt.Errorf("%w: no hay stock del producto %s en la bodega %s", domain.ErrNotFound, productID, warehouseID)
		}
		if l.QuantityOnHand < qty {
			return fmt.Errorf("%w: producto %s bodega %s: hay %d, se requieren %d",
				domain.ErrInsufficientStock, productID, warehouseID, l.QuantityOnHand, qty)
		}
		l.QuantityOnHand -= qty
		l.QuantityReserved = max(l.QuantityReserved-qty, 0)
		l.UpdatedAt = r.sc.now()
		return nil
	})
}

func (r *StockRepo) Reserve(ctx context.Context, productID, warehouseID string, qty int64) error {
	return r.sc.write(func(st *state) error {
		l, ok := st.stock[stockKey{productID, warehouseID}]
		if !ok {
			return fmt.Errorf("%w: no hay stock del producto %s en la bodega %s", domain.ErrNotFound, productID, warehouseID)
		}
		if l.Available() < qty {
			return fmt.Errorf("%w: producto %s bodega %s: disponible %d, se requieren %d",
				domain.ErrInsufficientStock, productID, warehouseID, l.Available(), qty)
		}
		l.QuantityReserved += qty
		l.UpdatedAt = r.sc.now()
		return nil
	})
}

func (r *StockRepo) Release(ctx context.Context, productID, warehouseID string, qty int64) error {
	return r.sc.write(func(st *state) error {
		if l, ok := st.stock[stockKey{productID, warehouseID}]; ok {
			l.QuantityReserved = max(l.QuantityReserved-qty, 0)
			l.UpdatedAt = r.sc.now()
		}
		return nil
	})
}

func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	return r.list(func(l *entity.StockLevel) bool { return l.ProductID == productID }, 0, 0)
}

func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	return r.list(func(l *entity.StockLevel) bool { return l.WarehouseID == warehouseID }, limit, offset)
}

func (r *StockRepo) list(match func(*entity.StockLevel) bool, limit, offset int) ([]*entity.StockLevel, error) {
	out := []*entity.StockLevel{}
	err := r.sc.read(func(st *state) error {
		for _, l := range st.stock {
			if match(l) {
				cp := *l
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return page(out, limit, offset), err
}

func (r *StockRepo) ListBelowReorderPoint(ctx context.Context) ([]repository.ReplenishmentItem, error) {
	var out []repository.ReplenishmentItem
	err := r.sc.read(func(st *state) error {
		onHand := map[string]int64{}
		available := map[string]int64{}
		for _, l := range st.stock {
			onHand[l.ProductID] += l.QuantityOnHand
			available[l.ProductID] += l.Available()
		}
		for _, p := range st.products {
			if !p.IsActive || available[p.ID] > p.ReorderPoint {
				continue
			}
			out = append(out, repository.ReplenishmentItem{
				ProductID:     p.ID,
				SKU:           p.SKU,
				ProductName:   p.Name,
				OnHand:        onHand[p.ID],
				Available:     available[p.ID],
				ReorderPoint:  p.ReorderPoint,
				MaxStockLevel: copyProduct(p).MaxStockLevel,
				UnitPrice:     p.UnitPrice,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, err
}
