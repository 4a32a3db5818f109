package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct {
	sc *scope
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.sc.write(func(st *state) error {
		for _, existing := range st.products {
			if existing.SKU == p.SKU || existing.ID == p.ID {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = copyProduct(p)
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.sc.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = copyProduct(p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.sc.read(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				out = copyProduct(p)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.sc.write(func(st *state) error {
		existing, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		updated := copyProduct(p)
		updated.SKU = existing.SKU
		updated.CreatedAt = existing.CreatedAt
		updated.CreatedBy = existing.CreatedBy
		st.products[p.ID] = updated
		return nil
	})
}

func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	return r.sc.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.IsActive = false
		p.UpdatedAt = r.sc.now()
		return nil
	})
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	var total int
	err := r.sc.read(func(st *state) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		var matched []*entity.Product
		for _, p := range st.products {
			if !p.IsActive {
				continue
			}
			if f.Category != "" && p.Category != f.Category {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.SKU), search) {
				continue
			}
			matched = append(matched, p)
		}
		sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
		total = len(matched)
		for _, p := range page(matched, f.Limit, f.Offset) {
			out = append(out, copyProduct(p))
		}
		return nil
	})
	return out, total, err
}
