package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// Las mutaciones son un único UPDATE/UPSERT con la condición en el WHERE: nunca leer-modificar-escribir.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, product_id, warehouse_id, quantity_on_hand, quantity_reserved, updated_at`

func scanStock(row pgx.Row) (*entity.StockLevel, error) {
	var s entity.StockLevel
	if err := row.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.QuantityOnHand, &s.QuantityReserved, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene el stock de un producto en una bodega; (nil, nil) si no hay fila.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2`
	s, err := scanStock(r.q.QueryRow(ctx, query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// Increase suma qty a on-hand, creando la fila si no existe.
func (r *StockRepo) Increase(ctx context.Context, productID, warehouseID string, qty int64) error {
	query := `
		INSERT INTO stock_levels (id, product_id, warehouse_id, quantity_on_hand, quantity_reserved, updated_at)
		VALUES ($1, $2, $3, $4, 0, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity_on_hand = stock_levels.quantity_on_hand + EXCLUDED.quantity_on_hand, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, uuid.New().String(), productID, warehouseID, qty); err != nil {
		return mapWriteError(err, "increase stock", domain.ErrConflict)
	}
	return nil
}

// Decrease resta qty de on-hand y de reservado solo si alcanza el on-hand.
func (r *StockRepo) Decrease(ctx context.Context, productID, warehouseID string, qty int64) error {
	query := `
		UPDATE stock_levels SET
			quantity_on_hand  = quantity_on_hand - $3,
			quantity_reserved = GREATEST(quantity_reserved - $3, 0),
			updated_at        = now()
		WHERE product_id = $1 AND warehouse_id = $2 AND quantity_on_hand >= $3`
	tag, err := r.q.Exec(ctx, query, productID, warehouseID, qty)
	if err != nil {
		return mapWriteError(err, "decrease stock", domain.ErrConflict)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrShort(ctx, productID, warehouseID)
	}
	return nil
}

// Reserve suma qty al reservado solo si el disponible alcanza.
func (r *StockRepo) Reserve(ctx context.Context, productID, warehouseID string, qty int64) error {
	query := `
		UPDATE stock_levels SET
			quantity_reserved = quantity_reserved + $3,
			updated_at        = now()
		WHERE product_id = $1 AND warehouse_id = $2 AND quantity_on_hand - quantity_reserved >= $3`
	tag, err := r.q.Exec(ctx, query, productID, warehouseID, qty)
	if err != nil {
		return mapWriteError(err, "reserve stock", domain.ErrConflict)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrShort(ctx, productID, warehouseID)
	}
	return nil
}

// Release resta qty del reservado sin bajar de cero. Sin fila no hace nada.
func (r *StockRepo) Release(ctx context.Context, productID, warehouseID string, qty int64) error {
	query := `
		UPDATE stock_levels SET
			quantity_reserved = GREATEST(quantity_reserved - $3, 0),
			updated_at        = now()
		WHERE product_id = $1 AND warehouse_id = $2`
	if _, err := r.q.Exec(ctx, query, productID, warehouseID, qty); err != nil {
		if isInvalidText(err) {
			return nil
		}
		return fmt.Errorf("release stock: %w", err)
	}
	return nil
}

// missOrShort distingue por qué un UPDATE condicionado no afectó filas.
func (r *StockRepo) missOrShort(ctx context.Context, productID, warehouseID string) error {
	level, err := r.Get(ctx, productID, warehouseID)
	if err != nil {
		return err
	}
	if level == nil {
		return fmt.Errorf("%w: sin stock del producto %s en la bodega %s", domain.ErrNotFound, productID, warehouseID)
	}
	return domain.ErrInsufficientStock
}

// ListByProduct stock del producto en todas las bodegas.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_levels WHERE product_id = $1 ORDER BY warehouse_id`
	return r.list(ctx, query, productID)
}

// ListByWarehouse stock de la bodega paginado.
func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	var w whereBuilder
	w.add("warehouse_id = ?", warehouseID)
	query := `SELECT ` + stockColumns + ` FROM stock_levels` + w.sql() + ` ORDER BY product_id` + w.page(limit, offset)
	return r.list(ctx, query, w.args...)
}

func (r *StockRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockLevel
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListBelowReorderPoint productos activos con disponible total <= punto de reorden.
// Productos sin filas de stock cuentan con disponible 0.
func (r *StockRepo) ListBelowReorderPoint(ctx context.Context) ([]repository.ReplenishmentItem, error) {
	query := `
		SELECT p.id, p.sku, p.name,
			COALESCE(SUM(s.quantity_on_hand), 0)::bigint,
			COALESCE(SUM(s.quantity_on_hand - s.quantity_reserved), 0)::bigint,
			p.reorder_point, p.max_stock_level, p.unit_price
		FROM products p
		LEFT JOIN stock_levels s ON s.product_id = p.id
		WHERE p.is_active
		GROUP BY p.id
		HAVING COALESCE(SUM(s.quantity_on_hand - s.quantity_reserved), 0) <= p.reorder_point
		ORDER BY p.sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list below reorder point: %w", err)
	}
	defer rows.Close()

	var items []repository.ReplenishmentItem
	for rows.Next() {
		var it repository.ReplenishmentItem
		if err := rows.Scan(
			&it.ProductID, &it.SKU, &it.ProductName, &it.OnHand, &it.Available,
			&it.ReorderPoint, &it.MaxStockLevel, &it.UnitPrice,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
