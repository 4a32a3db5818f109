package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

type fakeExporter struct {
	got []*entity.StockMovement
	err error
}

func (e *fakeExporter) ExportMovements(_ context.Context, movements []*entity.StockMovement) ([]byte, error) {
	e.got = movements
	return []byte("xlsx"), e.err
}

func newStockUseCase(t *testing.T, exporter inventory.MovementExporter) (*inventory.StockUseCase, repository.Repositories) {
	t.Helper()
	store, repos := newRepos(t)
	uc := inventory.NewStockUseCase(store, repos.Stock, repos.Movements, repos.Products, repos.Warehouses, exporter, zerolog.Nop())
	return uc, repos
}

func TestStockUseCase_ReservarYLiberar(t *testing.T) {
	uc, repos := newStockUseCase(t, nil)
	ctx := context.Background()
	require.NoError(t, repos.Stock.Increase(ctx, prodID, whID, 10))

	require.NoError(t, uc.Reserve(ctx, inventory.ReservationInput{ProductID: prodID, WarehouseID: whID, Quantity: 6}))
	ok, err := uc.CheckAvailability(ctx, prodID, whID, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	err = uc.Reserve(ctx, inventory.ReservationInput{ProductID: prodID, WarehouseID: whID, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.NoError(t, uc.Release(ctx, inventory.ReservationInput{ProductID: prodID, WarehouseID: whID, Quantity: 6}))
	ok, err = uc.CheckAvailability(ctx, prodID, whID, 10)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStockUseCase_EntradaInvalida(t *testing.T) {
	uc, _ := newStockUseCase(t, nil)
	ctx := context.Background()
	_, err := uc.CheckAvailability(ctx, "", whID, 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, uc.Reserve(ctx, inventory.ReservationInput{WarehouseID: whID, Quantity: 1}), domain.ErrValidation)
	assert.ErrorIs(t, uc.Release(ctx, inventory.ReservationInput{ProductID: prodID, WarehouseID: whID}), domain.ErrValidation)
}

func TestStockUseCase_ConsultasNoEncontradas(t *testing.T) {
	uc, _ := newStockUseCase(t, nil)
	ctx := context.Background()
	_, err := uc.ProductStock(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.WarehouseStock(ctx, uuid.NewString(), 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockUseCase_StockPorProductoYBodega(t *testing.T) {
	uc, repos := newStockUseCase(t, nil)
	ctx := context.Background()
	require.NoError(t, repos.Stock.Increase(ctx, prodID, whID, 4))

	byProduct, err := uc.ProductStock(ctx, prodID)
	require.NoError(t, err)
	require.Len(t, byProduct, 1)
	assert.Equal(t, int64(4), byProduct[0].QuantityOnHand)

	byWarehouse, err := uc.WarehouseStock(ctx, whID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byWarehouse, 1)
}

func TestStockUseCase_ExportarMovimientos(t *testing.T) {
	exp := &fakeExporter{}
	uc, repos := newStockUseCase(t, exp)
	ctx := context.Background()
	require.NoError(t, inventory.LedgerFor(repos).RecordMovement(ctx, &entity.StockMovement{
		MovementType: entity.MovementTypeIN, ProductID: prodID, ToWarehouseID: whID, Quantity: 2,
	}))

	data, name, err := uc.ExportMovements(ctx, repository.MovementFilter{ProductID: prodID, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Contains(t, name, ".xlsx")
	assert.Len(t, exp.got, 1)

	exp.err = errors.New("disco lleno")
	_, _, err = uc.ExportMovements(ctx, repository.MovementFilter{})
	assert.Error(t, err)
}

// bulkMovements devuelve n movimientos para cualquier filtro, respetando Limit.
type bulkMovements struct {
	n         int
	lastLimit int
}

func (b *bulkMovements) Create(context.Context, *entity.StockMovement) error { return nil }

func (b *bulkMovements) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	b.lastLimit = f.Limit
	n := b.n
	if f.Limit > 0 && f.Limit < n {
		n = f.Limit
	}
	out := make([]*entity.StockMovement, n)
	for i := range out {
		out[i] = &entity.StockMovement{ID: uuid.NewString(), MovementType: entity.MovementTypeIN, Quantity: 1}
	}
	return out, nil
}

func TestStockUseCase_ExportarExcedeTope(t *testing.T) {
	store, repos := newRepos(t)
	exp := &fakeExporter{}
	movements := &bulkMovements{n: inventory.MaxExportRows + 1}
	uc := inventory.NewStockUseCase(store, repos.Stock, movements, repos.Products, repos.Warehouses, exp, zerolog.Nop())

	_, _, err := uc.ExportMovements(context.Background(), repository.MovementFilter{ProductID: prodID})
	assert.ErrorIs(t, err, domain.ErrValidation, "no se entrega un archivo truncado")
	assert.Nil(t, exp.got, "el exportador no se invoca")

	movements.n = inventory.MaxExportRows
	data, _, err := uc.ExportMovements(context.Background(), repository.MovementFilter{ProductID: prodID})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Len(t, exp.got, inventory.MaxExportRows, "justo en el tope se exporta completo")
	assert.Equal(t, inventory.MaxExportRows+1, movements.lastLimit)
}

func TestStockUseCase_ExportarSinExportador(t *testing.T) {
	uc, _ := newStockUseCase(t, nil)
	_, _, err := uc.ExportMovements(context.Background(), repository.MovementFilter{})
	assert.Error(t, err)
}
