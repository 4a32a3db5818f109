//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/stockflow-api/internal/application/document"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
)

// startPostgres levanta un contenedor, aplica migraciones y devuelve el pool.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcPostgres.WithDatabase("stockflow_test"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, zerolog.Nop()))
	// Idempotente: una segunda pasada no reaplica nada.
	require.NoError(t, postgres.Migrate(ctx, pool, zerolog.Nop()))
	return pool
}

func seed(t *testing.T, repos repository.Repositories) (productID, w1, w2 string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	productID = uuid.New().String()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: productID, SKU: "TOR-" + productID[:6], Name: "Tornillo", UnitOfMeasure: "und",
		UnitPrice: decimal.RequireFromString("1.50"), ReorderPoint: 10, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}))

	w1, w2 = uuid.New().String(), uuid.New().String()
	for i, id := range []string{w1, w2} {
		require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{
			ID: id, Code: id[:8], Name: []string{"Principal", "Norte"}[i], IsActive: true,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	return productID, w1, w2
}

func TestPostgres_Integration(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	repos := postgres.NewRepositories(pool)
	txRunner := postgres.NewTxRunner(pool)
	productID, w1, w2 := seed(t, repos)

	t.Run("producto con SKU repetido", func(t *testing.T) {
		p, err := repos.Products.GetByID(ctx, productID)
		require.NoError(t, err)
		dup := *p
		dup.ID = uuid.New().String()
		assert.ErrorIs(t, repos.Products.Create(ctx, &dup), domain.ErrDuplicate)

		missing, err := repos.Products.GetByID(ctx, "no-es-uuid")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ledger atómico", func(t *testing.T) {
		assert.ErrorIs(t, repos.Stock.Decrease(ctx, productID, w1, 1), domain.ErrNotFound)
		assert.ErrorIs(t, repos.Stock.Reserve(ctx, productID, w1, 1), domain.ErrNotFound)
		require.NoError(t, repos.Stock.Release(ctx, productID, w1, 1))

		require.NoError(t, repos.Stock.Increase(ctx, productID, w1, 20))
		require.NoError(t, repos.Stock.Increase(ctx, productID, w1, 5))
		require.NoError(t, repos.Stock.Reserve(ctx, productID, w1, 10))
		assert.ErrorIs(t, repos.Stock.Reserve(ctx, productID, w1, 16), domain.ErrInsufficientStock)
		assert.ErrorIs(t, repos.Stock.Decrease(ctx, productID, w1, 26), domain.ErrInsufficientStock)

		require.NoError(t, repos.Stock.Decrease(ctx, productID, w1, 4))
		level, err := repos.Stock.Get(ctx, productID, w1)
		require.NoError(t, err)
		assert.Equal(t, int64(21), level.QuantityOnHand)
		assert.Equal(t, int64(6), level.QuantityReserved)

		require.NoError(t, repos.Stock.Release(ctx, productID, w1, 100))
		level, err = repos.Stock.Get(ctx, productID, w1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), level.QuantityReserved)

		assert.ErrorIs(t, repos.Stock.Increase(ctx, productID, uuid.New().String(), 1), domain.ErrReferentialIntegrity)
	})

	t.Run("salidas concurrentes no dejan stock negativo", func(t *testing.T) {
		p := uuid.New().String()
		require.NoError(t, repos.Products.Create(ctx, &entity.Product{
			ID: p, SKU: "CON-" + p[:6], Name: "Concurrente", IsActive: true,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}))
		require.NoError(t, repos.Stock.Increase(ctx, p, w2, 10))

		var ok atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if repos.Stock.Decrease(ctx, p, w2, 3) == nil {
					ok.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(3), ok.Load())
		level, err := repos.Stock.Get(ctx, p, w2)
		require.NoError(t, err)
		assert.Equal(t, int64(1), level.QuantityOnHand)
	})

	t.Run("validaciones concurrentes del mismo documento", func(t *testing.T) {
		uc := document.NewWorkflowUseCase(txRunner, repos, zerolog.Nop())
		p := uuid.New().String()
		require.NoError(t, repos.Products.Create(ctx, &entity.Product{
			ID: p, SKU: "VAL-" + p[:6], Name: "Validación concurrente", IsActive: true,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}))

		doc, err := uc.Create(ctx, document.CreateDocumentInput{
			Type:      entity.DocumentTypeReceipt,
			Lines:     []document.LineInput{{ProductID: p, Quantity: 7, UnitPrice: decimal.NewFromInt(1)}},
			CreatedBy: "u-1",
		})
		require.NoError(t, err)
		for _, st := range []entity.DocumentStatus{entity.DocumentStatusWaiting, entity.DocumentStatusReady} {
			_, err = uc.UpdateStatus(ctx, doc.ID, st, "u-1", nil)
			require.NoError(t, err)
		}

		const workers = 6
		var ok atomic.Int32
		errs := make(chan error, workers)
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := uc.UpdateStatus(ctx, doc.ID, entity.DocumentStatusDone, "u-2", entity.SingleWarehouse{ID: w2})
				if err != nil {
					errs <- err
					return
				}
				ok.Add(1)
			}()
		}
		close(start)
		wg.Wait()
		close(errs)

		assert.Equal(t, int32(1), ok.Load(), "solo una validación cambia el estado a done")
		for err := range errs {
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		}

		level, err := repos.Stock.Get(ctx, p, w2)
		require.NoError(t, err)
		require.NotNil(t, level)
		assert.Equal(t, int64(7), level.QuantityOnHand, "el stock se aplica una sola vez")

		moves, err := repos.Movements.List(ctx, repository.MovementFilter{DocumentID: doc.ID})
		require.NoError(t, err)
		assert.Len(t, moves, 1)
	})

	t.Run("flujo de documento hasta done", func(t *testing.T) {
		uc := document.NewWorkflowUseCase(txRunner, repos, zerolog.Nop())

		doc, err := uc.Create(ctx, document.CreateDocumentInput{
			Type:        entity.DocumentTypeTransfer,
			PartnerName: "Interno",
			Lines:       []document.LineInput{{ProductID: productID, Quantity: 5, UnitPrice: decimal.NewFromInt(2)}},
			CreatedBy:   "u-1",
		})
		require.NoError(t, err)
		assert.Regexp(t, `^TRF-\d{4}-001$`, doc.DocumentNumber)

		for _, st := range []entity.DocumentStatus{entity.DocumentStatusWaiting, entity.DocumentStatusReady} {
			_, err = uc.UpdateStatus(ctx, doc.ID, st, "u-1", nil)
			require.NoError(t, err)
		}
		done, err := uc.UpdateStatus(ctx, doc.ID, entity.DocumentStatusDone, "u-2",
			entity.WarehousePair{From: w1, To: w2})
		require.NoError(t, err)
		assert.Equal(t, entity.DocumentStatusDone, done.Status)
		require.NotNil(t, done.ValidatedAt)
		assert.Equal(t, "u-2", done.ValidatedBy)
		require.Len(t, done.Lines, 1)

		src, err := repos.Stock.Get(ctx, productID, w1)
		require.NoError(t, err)
		assert.Equal(t, int64(16), src.QuantityOnHand)
		dst, err := repos.Stock.Get(ctx, productID, w2)
		require.NoError(t, err)
		assert.Equal(t, int64(5), dst.QuantityOnHand)

		moves, err := repos.Movements.List(ctx, repository.MovementFilter{DocumentID: doc.ID, Limit: 10})
		require.NoError(t, err)
		require.Len(t, moves, 1)
		assert.Equal(t, entity.MovementTypeTRANSFER, moves[0].MovementType)
		assert.Equal(t, w1, moves[0].FromWarehouseID)
		assert.Equal(t, w2, moves[0].ToWarehouseID)

		_, err = uc.UpdateStatus(ctx, doc.ID, entity.DocumentStatusCancelled, "u-1", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("falla a mitad de documento no deja cambios", func(t *testing.T) {
		uc := document.NewWorkflowUseCase(txRunner, repos, zerolog.Nop())
		before, err := repos.Stock.Get(ctx, productID, w1)
		require.NoError(t, err)

		doc, err := uc.Create(ctx, document.CreateDocumentInput{
			Type:        entity.DocumentTypeDelivery,
			WarehouseID: w1,
			Lines: []document.LineInput{
				{ProductID: productID, Quantity: 1},
				{ProductID: productID, Quantity: 10_000},
			},
		})
		require.NoError(t, err)
		for _, st := range []entity.DocumentStatus{entity.DocumentStatusWaiting, entity.DocumentStatusReady} {
			_, err = uc.UpdateStatus(ctx, doc.ID, st, "u-1", nil)
			require.NoError(t, err)
		}
		_, err = uc.UpdateStatus(ctx, doc.ID, entity.DocumentStatusDone, "u-1", nil)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		after, err := repos.Stock.Get(ctx, productID, w1)
		require.NoError(t, err)
		assert.Equal(t, before.QuantityOnHand, after.QuantityOnHand)

		reread, err := uc.Get(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.DocumentStatusReady, reread.Status)
	})

	t.Run("número repetido es conflicto", func(t *testing.T) {
		now := time.Now()
		mk := func() *entity.Document {
			return &entity.Document{
				ID: uuid.New().String(), DocumentNumber: "ADJ-1999-001",
				DocumentType: entity.DocumentTypeAdjustment, Status: entity.DocumentStatusDraft,
				CreatedAt: now, UpdatedAt: now,
			}
		}
		require.NoError(t, repos.Documents.Create(ctx, mk()))
		assert.ErrorIs(t, repos.Documents.Create(ctx, mk()), domain.ErrConflict)
	})

	t.Run("listados y reabastecimiento", func(t *testing.T) {
		docs, total, err := repos.Documents.List(ctx, repository.DocumentFilter{Search: "trf", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, docs, 1)
		assert.Empty(t, docs[0].Lines)

		n, err := repos.Documents.CountByTypeSince(ctx, entity.DocumentTypeTransfer, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		products, total, err := repos.Products.List(ctx, repository.ProductFilter{Search: "tornillo", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, products, 1)

		low := uuid.New().String()
		require.NoError(t, repos.Products.Create(ctx, &entity.Product{
			ID: low, SKU: "LOW-" + low[:6], Name: "Sin stock", ReorderPoint: 5, IsActive: true,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}))

		items, err := repos.Stock.ListBelowReorderPoint(ctx)
		require.NoError(t, err)
		bySKU := map[string]repository.ReplenishmentItem{}
		for _, it := range items {
			bySKU[it.SKU] = it
		}
		require.Contains(t, bySKU, "LOW-"+low[:6], "un producto sin filas de stock cuenta con disponible 0")
		assert.Equal(t, int64(0), bySKU["LOW-"+low[:6]].Available)
		assert.NotContains(t, bySKU, "TOR-"+productID[:6], "21 disponibles superan el punto de reorden")

		require.NoError(t, repos.Products.Deactivate(ctx, productID))
		_, total, err = repos.Products.List(ctx, repository.ProductFilter{Search: "tornillo", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})
}
