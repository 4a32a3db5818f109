package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct {
	sc *scope
}

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	return r.sc.write(func(st *state) error {
		for _, existing := range st.warehouses {
			if existing.Code == w.Code || existing.ID == w.ID {
				return domain.ErrDuplicate
			}
		}
		cp := *w
		st.warehouses[w.ID] = &cp
		return nil
	})
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.sc.read(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			cp := *w
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) ListActive(ctx context.Context) ([]*entity.Warehouse, error) {
	out := []*entity.Warehouse{}
	err := r.sc.read(func(st *state) error {
		for _, w := range st.warehouses {
			if w.IsActive {
				cp := *w
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}
