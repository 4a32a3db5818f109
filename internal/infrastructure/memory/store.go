// Package memory implementa los puertos de repositorio en memoria.
// Las transacciones se serializan con un mutex: Run trabaja sobre una copia del estado y
// la publica solo si fn termina sin error.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

type stockKey struct {
	productID   string
	warehouseID string
}

type state struct {
	documents  map[string]*entity.Document
	stock      map[stockKey]*entity.StockLevel
	movements  []*entity.StockMovement
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
}

func newState() *state {
	return &state{
		documents:  map[string]*entity.Document{},
		stock:      map[stockKey]*entity.StockLevel{},
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
	}
}

// clone copia el estado completo; las entidades se copian para que la tx no toque el original.
func (s *state) clone() *state {
	c := newState()
	for id, d := range s.documents {
		c.documents[id] = copyDocument(d)
	}
	for k, l := range s.stock {
		cp := *l
		c.stock[k] = &cp
	}
	c.movements = make([]*entity.StockMovement, len(s.movements))
	copy(c.movements, s.movements)
	for id, p := range s.products {
		c.products[id] = copyProduct(p)
	}
	for id, w := range s.warehouses {
		cp := *w
		c.warehouses[id] = &cp
	}
	return c
}

// Store base de datos en memoria. Segura para uso concurrente.
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState(), now: time.Now}
}

// Repositories devuelve repositorios fuera de transacción: cada llamada toma el lock.
func (s *Store) Repositories() repository.Repositories {
	return reposFor(&scope{store: s})
}

// Run ejecuta fn con repositorios atados a una transacción. Si fn devuelve error
// (o el contexto se cancela) no se publica ningún cambio.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := s.state.clone()
	if err := fn(reposFor(&scope{store: s, tx: tx})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// scope resuelve sobre qué estado opera un repositorio.
type scope struct {
	store *Store
	tx    *state
}

func (sc *scope) read(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.Lock()
	defer sc.store.mu.Unlock()
	return fn(sc.store.state)
}

// write fuera de transacción trabaja sobre una copia y la publica si no hay error,
// así una operación que falla a medias no deja cambios parciales.
func (sc *scope) write(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.Lock()
	defer sc.store.mu.Unlock()
	next := sc.store.state.clone()
	if err := fn(next); err != nil {
		return err
	}
	sc.store.state = next
	return nil
}

func (sc *scope) now() time.Time {
	return sc.store.now()
}

func reposFor(sc *scope) repository.Repositories {
	return repository.Repositories{
		Documents:  &DocumentRepo{sc: sc},
		Stock:      &StockRepo{sc: sc},
		Movements:  &StockMovementRepo{sc: sc},
		Products:   &ProductRepo{sc: sc},
		Warehouses: &WarehouseRepo{sc: sc},
	}
}

func copyDocument(d *entity.Document) *entity.Document {
	cp := *d
	cp.Lines = make([]entity.DocumentLine, len(d.Lines))
	copy(cp.Lines, d.Lines)
	if d.ScheduledDate != nil {
		t := *d.ScheduledDate
		cp.ScheduledDate = &t
	}
	if d.ValidatedAt != nil {
		t := *d.ValidatedAt
		cp.ValidatedAt = &t
	}
	return &cp
}

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.MaxStockLevel != nil {
		v := *p.MaxStockLevel
		cp.MaxStockLevel = &v
	}
	return &cp
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
