// Package document orquesta el ciclo de vida de los documentos de inventario:
// creación con numeración por tipo y año, transiciones de estado y aplicación
// de stock al validar (paso a done), todo dentro de una transacción.
package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	rules "github.com/jhoicas/stockflow-api/internal/domain/document"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

const defaultLockTTL = 5 * time.Second

// WorkflowUseCase casos de uso de documentos. No verifica permisos: eso es del llamador.
type WorkflowUseCase struct {
	txRunner inventory.TxRunner
	repos    repository.Repositories
	locker   SequenceLocker
	lockTTL  time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*WorkflowUseCase)

// WithSequenceLocker activa el lock distribuido alrededor de la numeración.
func WithSequenceLocker(locker SequenceLocker, ttl time.Duration) Option {
	return func(uc *WorkflowUseCase) {
		uc.locker = locker
		if ttl > 0 {
			uc.lockTTL = ttl
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *WorkflowUseCase) { uc.now = now }
}

// NewWorkflowUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
func NewWorkflowUseCase(txRunner inventory.TxRunner, repos repository.Repositories, log zerolog.Logger, opts ...Option) *WorkflowUseCase {
	uc := &WorkflowUseCase{
		txRunner: txRunner,
		repos:    repos,
		lockTTL:  defaultLockTTL,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// LineInput línea de un documento nuevo.
type LineInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Notes     string
}

// CreateDocumentInput entrada para crear un documento en borrador.
type CreateDocumentInput struct {
	Type            entity.DocumentType
	ReferenceNumber string
	PartnerName     string
	ScheduledDate   *time.Time
	WarehouseID     string // bodega por defecto (opcional)
	Lines           []LineInput
	CreatedBy       string
}

// Create valida la entrada, asigna el número {PREFIX}-{año}-{seq} y persiste cabecera y líneas
// en estado draft. Un número repetido devuelve domain.ErrConflict con el número en el mensaje.
func (uc *WorkflowUseCase) Create(ctx context.Context, in CreateDocumentInput) (*entity.Document, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := uc.now()
	release := uc.acquireSequenceLock(ctx, in.Type, now.Year())
	defer release()

	doc := &entity.Document{
		ID:              uuid.New().String(),
		DocumentType:    in.Type,
		Status:          entity.DocumentStatusDraft,
		ReferenceNumber: in.ReferenceNumber,
		PartnerName:     in.PartnerName,
		ScheduledDate:   in.ScheduledDate,
		WarehouseID:     in.WarehouseID,
		CreatedBy:       in.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i, l := range in.Lines {
		doc.Lines = append(doc.Lines, entity.DocumentLine{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			LineNo:     i + 1,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Notes:      l.Notes,
		})
	}

	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := checkReferences(ctx, repos, doc); err != nil {
			return err
		}
		count, err := repos.Documents.CountByTypeSince(ctx, doc.DocumentType, rules.YearStart(now))
		if err != nil {
			return fmt.Errorf("contar documentos: %w", err)
		}
		doc.DocumentNumber = rules.NextNumber(doc.DocumentType, now, count)
		return repos.Documents.Create(ctx, doc)
	})
	if errors.Is(err, domain.ErrConflict) {
		// La numeración por conteo choca con un número existente; persiste mientras el conteo
		// del año no supere al número repetido (por ejemplo tras eliminar un borrador).
		uc.log.Error().Err(err).
			Str("document_type", string(in.Type)).
			Str("document_number", doc.DocumentNumber).
			Msg("número de documento repetido")
		return nil, fmt.Errorf("%w: el número %s ya existe", domain.ErrConflict, doc.DocumentNumber)
	}
	if err != nil {
		uc.log.Warn().Err(err).Str("document_type", string(in.Type)).Msg("creación de documento rechazada")
		return nil, err
	}

	uc.log.Info().
		Str("document_id", doc.ID).
		Str("document_number", doc.DocumentNumber).
		Str("document_type", string(doc.DocumentType)).
		Int("lines", len(doc.Lines)).
		Str("actor_id", in.CreatedBy).
		Msg("documento creado")
	return doc, nil
}

func validateCreate(in CreateDocumentInput) error {
	if !in.Type.Valid() {
		return fmt.Errorf("%w: tipo de documento %q", domain.ErrValidation, in.Type)
	}
	if len(in.Lines) == 0 {
		return fmt.Errorf("%w: el documento debe tener al menos una línea", domain.ErrValidation)
	}
	for i, l := range in.Lines {
		if l.ProductID == "" {
			return fmt.Errorf("%w: línea %d sin producto", domain.ErrValidation, i+1)
		}
		if err := rules.ValidateLineQuantity(in.Type, l.Quantity); err != nil {
			return fmt.Errorf("línea %d: %w", i+1, err)
		}
		if l.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: línea %d con precio negativo", domain.ErrValidation, i+1)
		}
	}
	return nil
}

// checkReferences exige productos existentes y activos, y que la bodega por defecto exista.
func checkReferences(ctx context.Context, repos repository.Repositories, doc *entity.Document) error {
	seen := make(map[string]bool, len(doc.Lines))
	for _, l := range doc.Lines {
		if seen[l.ProductID] {
			continue
		}
		seen[l.ProductID] = true
		p, err := repos.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return fmt.Errorf("obtener producto: %w", err)
		}
		if p == nil || !p.IsActive {
			return fmt.Errorf("%w: producto %s no existe o está inactivo", domain.ErrValidation, l.ProductID)
		}
	}
	if doc.WarehouseID != "" {
		w, err := repos.Warehouses.GetByID(ctx, doc.WarehouseID)
		if err != nil {
			return fmt.Errorf("obtener bodega: %w", err)
		}
		if w == nil {
			return fmt.Errorf("%w: bodega %s no existe", domain.ErrValidation, doc.WarehouseID)
		}
	}
	return nil
}

func (uc *WorkflowUseCase) acquireSequenceLock(ctx context.Context, t entity.DocumentType, year int) func() {
	if uc.locker == nil {
		return func() {}
	}
	key := fmt.Sprintf("docseq:%s:%d", t, year)
	release, err := uc.locker.Acquire(ctx, key, uc.lockTTL)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se obtuvo el lock de numeración; se continúa sin él")
		return func() {}
	}
	return release
}

// UpdateStatus cambia el estado del documento. Al pasar a done resuelve las bodegas con sel
// (o la bodega por defecto del documento), aplica el stock de cada línea en orden, registra
// los movimientos y marca validated_at/by; todo en la misma transacción que el cambio de estado.
func (uc *WorkflowUseCase) UpdateStatus(
	ctx context.Context,
	id string,
	newStatus entity.DocumentStatus,
	actorID string,
	sel entity.WarehouseSelector,
) (*entity.Document, error) {
	var (
		updated *entity.Document
		from    entity.DocumentStatus
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		doc, err := repos.Documents.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener documento: %w", err)
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		from = doc.Status
		if err := rules.CheckTransition(doc.Status, newStatus); err != nil {
			return err
		}

		now := uc.now()
		if newStatus == entity.DocumentStatusDone {
			if err := uc.applyStock(ctx, repos, doc, actorID, sel, now); err != nil {
				return err
			}
			doc.ValidatedAt = &now
			doc.ValidatedBy = actorID
		}
		doc.Status = newStatus
		doc.UpdatedAt = now
		if err := repos.Documents.UpdateStatus(ctx, doc); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}

		updated, err = repos.Documents.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("releer documento: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("document_id", id).
			Str("from", string(from)).
			Str("to", string(newStatus)).
			Msg("cambio de estado rechazado")
		return nil, err
	}

	ev := uc.log.Info().
		Str("document_id", updated.ID).
		Str("document_number", updated.DocumentNumber).
		Str("from", string(from)).
		Str("to", string(newStatus)).
		Str("actor_id", actorID)
	if newStatus == entity.DocumentStatusDone {
		ev = ev.Int("lines", len(updated.Lines))
	}
	ev.Msg("estado de documento actualizado")
	return updated, nil
}

// applyStock mueve el stock de todas las líneas. Cualquier error aborta la transacción completa.
func (uc *WorkflowUseCase) applyStock(
	ctx context.Context,
	repos repository.Repositories,
	doc *entity.Document,
	actorID string,
	sel entity.WarehouseSelector,
	now time.Time,
) error {
	route, err := rules.ResolveRoute(doc.DocumentType, sel, doc.WarehouseID)
	if err != nil {
		return err
	}
	for _, wid := range route.Warehouses() {
		w, err := repos.Warehouses.GetByID(ctx, wid)
		if err != nil {
			return fmt.Errorf("obtener bodega: %w", err)
		}
		if w == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, wid)
		}
	}

	ledger := inventory.LedgerFor(repos)
	for _, line := range doc.Lines {
		mov, err := applyLine(ctx, ledger, doc.DocumentType, route, line)
		if err != nil {
			return fmt.Errorf("línea %d (producto %s): %w", line.LineNo, line.ProductID, err)
		}
		mov.DocumentID = doc.ID
		mov.ProductID = line.ProductID
		mov.UnitPrice = line.UnitPrice
		mov.ReferenceNumber = doc.DocumentNumber
		mov.CreatedBy = actorID
		mov.CreatedAt = now
		if err := ledger.RecordMovement(ctx, mov); err != nil {
			return fmt.Errorf("línea %d: registrar movimiento: %w", line.LineNo, err)
		}
	}
	return nil
}

// applyLine aplica una línea según el tipo y devuelve el movimiento a registrar (sin metadatos).
func applyLine(ctx context.Context, ledger *inventory.Ledger, t entity.DocumentType, route rules.Route, line entity.DocumentLine) (*entity.StockMovement, error) {
	q := line.Quantity
	switch t {
	case entity.DocumentTypeReceipt:
		if err := ledger.UpdateStock(ctx, entity.DocumentTypeReceipt, line.ProductID, route.To, q); err != nil {
			return nil, err
		}
		return &entity.StockMovement{MovementType: entity.MovementTypeIN, ToWarehouseID: route.To, Quantity: q}, nil

	case entity.DocumentTypeDelivery:
		if err := ledger.UpdateStock(ctx, entity.DocumentTypeDelivery, line.ProductID, route.From, q); err != nil {
			return nil, err
		}
		return &entity.StockMovement{MovementType: entity.MovementTypeOUT, FromWarehouseID: route.From, Quantity: q}, nil

	case entity.DocumentTypeTransfer:
		if err := ledger.UpdateStock(ctx, entity.DocumentTypeDelivery, line.ProductID, route.From, q); err != nil {
			return nil, err
		}
		if err := ledger.UpdateStock(ctx, entity.DocumentTypeReceipt, line.ProductID, route.To, q); err != nil {
			return nil, err
		}
		return &entity.StockMovement{
			MovementType:    entity.MovementTypeTRANSFER,
			FromWarehouseID: route.From,
			ToWarehouseID:   route.To,
			Quantity:        q,
		}, nil

	case entity.DocumentTypeAdjustment:
		if err := ledger.UpdateStock(ctx, entity.DocumentTypeAdjustment, line.ProductID, route.To, q); err != nil {
			return nil, err
		}
		if q >= 0 {
			return &entity.StockMovement{MovementType: entity.MovementTypeADJUSTMENT, ToWarehouseID: route.To, Quantity: q}, nil
		}
		return &entity.StockMovement{MovementType: entity.MovementTypeADJUSTMENT, FromWarehouseID: route.From, Quantity: -q}, nil
	}
	return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrValidation, t)
}

// Delete elimina un documento en borrador junto con sus líneas.
func (uc *WorkflowUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		doc, err := repos.Documents.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener documento: %w", err)
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status != entity.DocumentStatusDraft {
			return fmt.Errorf("%w: solo se pueden eliminar documentos en borrador (estado actual %s)",
				domain.ErrInvalidState, doc.Status)
		}
		return repos.Documents.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("document_id", id).Msg("documento eliminado")
	return nil
}

// Get devuelve el documento con sus líneas.
func (uc *WorkflowUseCase) Get(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.repos.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// List lista documentos (sin líneas), más recientes primero, con el total para paginar.
func (uc *WorkflowUseCase) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.Document, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.repos.Documents.List(ctx, filter)
}
