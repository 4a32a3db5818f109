package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo documentos y líneas sobre PostgreSQL. Create y GetForUpdate esperan una tx.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de documentos. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, document_number, document_type, status, reference_number, partner_name,
		scheduled_date, warehouse_id, created_by, created_at, updated_at, validated_at, validated_by`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		d               entity.Document
		docType, status string
		warehouseID     *string
		validatedBy     *string
	)
	err := row.Scan(
		&d.ID, &d.DocumentNumber, &docType, &status, &d.ReferenceNumber, &d.PartnerName,
		&d.ScheduledDate, &warehouseID, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt, &d.ValidatedAt, &validatedBy,
	)
	if err != nil {
		return nil, err
	}
	d.DocumentType = entity.DocumentType(docType)
	d.Status = entity.DocumentStatus(status)
	d.WarehouseID = derefString(warehouseID)
	d.ValidatedBy = derefString(validatedBy)
	return &d, nil
}

// Create inserta la cabecera y sus líneas. Número repetido → domain.ErrConflict.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.DocumentNumber, string(doc.DocumentType), string(doc.Status),
		doc.ReferenceNumber, doc.PartnerName, doc.ScheduledDate, nullString(doc.WarehouseID),
		doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt, doc.ValidatedAt, nullString(doc.ValidatedBy),
	)
	if err != nil {
		return mapWriteError(err, "insert document", domain.ErrConflict)
	}

	lineQuery := `
		INSERT INTO document_lines (id, document_id, line_no, product_id, quantity, unit_price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, l := range doc.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			l.ID, doc.ID, l.LineNo, l.ProductID, l.Quantity, l.UnitPrice, l.Notes,
		); err != nil {
			return mapWriteError(err, "insert document line", domain.ErrConflict)
		}
	}
	return nil
}

// GetByID obtiene el documento con sus líneas.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

// GetForUpdate obtiene el documento bloqueando la cabecera hasta el fin de la tx.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *DocumentRepo) get(ctx context.Context, query, id string) (*entity.Document, error) {
	doc, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	lines, err := r.lines(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return doc, nil
}

func (r *DocumentRepo) lines(ctx context.Context, documentID string) ([]entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, line_no, product_id, quantity, unit_price, notes
		FROM document_lines WHERE document_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.LineNo, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Notes); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateStatus persiste el estado y los datos de validación.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, doc *entity.Document) error {
	query := `
		UPDATE documents SET status = $2, validated_at = $3, validated_by = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		doc.ID, string(doc.Status), doc.ValidatedAt, nullString(doc.ValidatedBy), doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el documento; las líneas caen en cascada y el kardex queda con document_id NULL.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByTypeSince cuenta los documentos del tipo creados desde since.
func (r *DocumentRepo) CountByTypeSince(ctx context.Context, t entity.DocumentType, since time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM documents WHERE document_type = $1 AND created_at >= $2`,
		string(t), since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// List lista cabeceras (sin líneas), más reciente primero, con el total para paginar.
func (r *DocumentRepo) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.Document, int, error) {
	var w whereBuilder
	if filter.Type != "" {
		w.add("document_type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		w.add("status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		w.add("(document_number ILIKE ? OR reference_number ILIKE ? OR partner_name ILIKE ?)", pattern, pattern, pattern)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documents`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	query := `SELECT ` + documentColumns + ` FROM documents` + w.sql() +
		` ORDER BY created_at DESC, document_number DESC` + w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}
