package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kardex sobre PostgreSQL. Solo inserta y lee.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del kardex. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. Bodegas y documento vacíos se guardan como NULL.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (
			id, movement_type, document_id, product_id, from_warehouse_id, to_warehouse_id,
			quantity, unit_price, reference_number, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, string(m.MovementType), nullString(m.DocumentID), m.ProductID,
		nullString(m.FromWarehouseID), nullString(m.ToWarehouseID),
		m.Quantity, m.UnitPrice, m.ReferenceNumber, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return mapWriteError(err, "insert stock movement", domain.ErrConflict)
	}
	return nil
}

// List lista el kardex, más reciente primero.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var w whereBuilder
	if filter.ProductID != "" {
		w.add("product_id = ?", filter.ProductID)
	}
	if filter.WarehouseID != "" {
		w.add("(from_warehouse_id = ? OR to_warehouse_id = ?)", filter.WarehouseID, filter.WarehouseID)
	}
	if filter.DocumentID != "" {
		w.add("document_id = ?", filter.DocumentID)
	}
	if filter.From != nil {
		w.add("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("created_at <= ?", *filter.To)
	}

	query := `
		SELECT id, movement_type, document_id, product_id, from_warehouse_id, to_warehouse_id,
			quantity, unit_price, reference_number, created_by, created_at
		FROM stock_movements` + w.sql() + ` ORDER BY created_at DESC, id` + w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var (
			m                 entity.StockMovement
			docID, fromW, toW *string
			movementType      string
		)
		if err := rows.Scan(
			&m.ID, &movementType, &docID, &m.ProductID, &fromW, &toW,
			&m.Quantity, &m.UnitPrice, &m.ReferenceNumber, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		m.MovementType = entity.MovementType(movementType)
		m.DocumentID = derefString(docID)
		m.FromWarehouseID = derefString(fromW)
		m.ToWarehouseID = derefString(toW)
		list = append(list, &m)
	}
	return list, rows.Err()
}
