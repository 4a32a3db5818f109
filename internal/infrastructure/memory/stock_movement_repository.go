package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kardex en memoria (solo inserción).
type StockMovementRepo struct {
	sc *scope
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.products[m.ProductID]; !ok {
			return fmt.Errorf("%w: producto %s", domain.ErrReferentialIntegrity, m.ProductID)
		}
		if m.DocumentID != "" {
			if _, ok := st.documents[m.DocumentID]; !ok {
				return fmt.Errorf("%w: documento %s", domain.ErrReferentialIntegrity, m.DocumentID)
			}
		}
		for _, w := range []string{m.FromWarehouseID, m.ToWarehouseID} {
			if w == "" {
				continue
			}
			if _, ok := st.warehouses[w]; !ok {
				return fmt.Errorf("%w: bodega %s", domain.ErrReferentialIntegrity, w)
			}
		}
		cp := *m
		st.movements = append(st.movements, &cp)
		return nil
	})
}

// List devuelve los movimientos más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	err := r.sc.read(func(st *state) error {
		var matched []*entity.StockMovement
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.DocumentID != "" && m.DocumentID != f.DocumentID {
				continue
			}
			if f.WarehouseID != "" && m.FromWarehouseID != f.WarehouseID && m.ToWarehouseID != f.WarehouseID {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			matched = append(matched, m)
		}
		for _, m := range page(matched, f.Limit, f.Offset) {
			cp := *m
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}
