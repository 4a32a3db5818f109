package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo documentos en memoria.
type DocumentRepo struct {
	sc *scope
}

func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.documents[doc.ID]; ok {
			return fmt.Errorf("%w: documento %s ya existe", domain.ErrConflict, doc.ID)
		}
		for _, d := range st.documents {
			if d.DocumentNumber == doc.DocumentNumber {
				return fmt.Errorf("%w: número de documento %s ya existe", domain.ErrConflict, doc.DocumentNumber)
			}
		}
		if doc.WarehouseID != "" {
			if _, ok := st.warehouses[doc.WarehouseID]; !ok {
				return fmt.Errorf("%w: bodega %s", domain.ErrReferentialIntegrity, doc.WarehouseID)
			}
		}
		for _, l := range doc.Lines {
			if _, ok := st.products[l.ProductID]; !ok {
				return fmt.Errorf("%w: producto %s", domain.ErrReferentialIntegrity, l.ProductID)
			}
		}
		st.documents[doc.ID] = copyDocument(doc)
		return nil
	})
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	err := r.sc.read(func(st *state) error {
		if d, ok := st.documents[id]; ok {
			out = copyDocument(d)
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: el lock del store ya serializa las transacciones.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

func (r *DocumentRepo) UpdateStatus(ctx context.Context, doc *entity.Document) error {
	return r.sc.write(func(st *state) error {
		d, ok := st.documents[doc.ID]
		if !ok {
			return domain.ErrNotFound
		}
		d.Status = doc.Status
		d.ValidatedAt = doc.ValidatedAt
		d.ValidatedBy = doc.ValidatedBy
		d.UpdatedAt = doc.UpdatedAt
		return nil
	})
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.documents[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.documents, id)
		// Los movimientos sobreviven al documento (ON DELETE SET NULL).
		for i, m := range st.movements {
			if m.DocumentID == id {
				cp := *m
				cp.DocumentID = ""
				st.movements[i] = &cp
			}
		}
		return nil
	})
}

func (r *DocumentRepo) CountByTypeSince(ctx context.Context, t entity.DocumentType, since time.Time) (int, error) {
	var n int
	err := r.sc.read(func(st *state) error {
		for _, d := range st.documents {
			if d.DocumentType == t && !d.CreatedAt.Before(since) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	var out []*entity.Document
	var total int
	err := r.sc.read(func(st *state) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		var matched []*entity.Document
		for _, d := range st.documents {
			if f.Type != "" && d.DocumentType != f.Type {
				continue
			}
			if f.Status != "" && d.Status != f.Status {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(d.DocumentNumber), search) &&
				!strings.Contains(strings.ToLower(d.ReferenceNumber), search) &&
				!strings.Contains(strings.ToLower(d.PartnerName), search) {
				continue
			}
			matched = append(matched, d)
		}
		sort.Slice(matched, func(i, j int) bool {
			if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
				return matched[i].CreatedAt.After(matched[j].CreatedAt)
			}
			return matched[i].DocumentNumber > matched[j].DocumentNumber
		})
		total = len(matched)
		for _, d := range page(matched, f.Limit, f.Offset) {
			cp := copyDocument(d)
			cp.Lines = nil
			out = append(out, cp)
		}
		return nil
	})
	return out, total, err
}
