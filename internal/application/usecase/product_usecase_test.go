package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

func newProductUseCase() (*usecase.ProductUseCase, *usecase.WarehouseUseCase, *memory.Store) {
	store := memory.NewStore()
	repos := store.Repositories()
	return usecase.NewProductUseCase(repos.Products, repos.Stock), usecase.NewWarehouseUseCase(repos.Warehouses), store
}

func createReq(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU: sku, Name: "Martillo " + sku, Category: "herramientas", UnitOfMeasure: "und",
		UnitPrice: decimal.NewFromInt(35000), ReorderPoint: 10,
	}
}

func TestProductUseCase_CrearYObtenerConStock(t *testing.T) {
	uc, wuc, store := newProductUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, "u1", createReq("MAR-01"))
	require.NoError(t, err)
	assert.True(t, p.IsActive)

	w, err := wuc.Register(ctx, "BOD-01", "Principal", "")
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Stock.Increase(ctx, p.ID, w.ID, 7))

	detail, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), detail.TotalOnHand)
	assert.Equal(t, int64(7), detail.TotalAvailable)
	require.Len(t, detail.Stock, 1)
	assert.Equal(t, w.ID, detail.Stock[0].WarehouseID)
}

func TestProductUseCase_SKUDuplicado(t *testing.T) {
	uc, _, _ := newProductUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, "u1", createReq("MAR-01"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, "u1", createReq("MAR-01"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_MaximoMenorQueReorden(t *testing.T) {
	uc, _, _ := newProductUseCase()
	req := createReq("MAR-02")
	req.MaxStockLevel = i64Ptr(5)
	_, err := uc.Create(context.Background(), "u1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_ActualizarYDesactivar(t *testing.T) {
	uc, _, _ := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, "u1", createReq("MAR-01"))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("Martillo de bola"), ReorderPoint: i64Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Martillo de bola", updated.Name)
	assert.Equal(t, "MAR-01", updated.SKU)
	assert.Equal(t, int64(3), updated.ReorderPoint)

	require.NoError(t, uc.Delete(ctx, p.ID))
	list, err := uc.List(ctx, dto.ProductQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "los inactivos no se listan")

	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "no-existe"), domain.ErrNotFound)
}

func TestProductUseCase_ListaFiltrada(t *testing.T) {
	uc, _, _ := newProductUseCase()
	ctx := context.Background()
	for _, sku := range []string{"MAR-01", "MAR-02", "DES-01"} {
		req := createReq(sku)
		if sku == "DES-01" {
			req.Name = "Destornillador"
			req.Category = "precisión"
		}
		_, err := uc.Create(ctx, "u1", req)
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, dto.ProductQuery{Category: "herramientas"})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)
	assert.Equal(t, 20, list.Page.Limit)

	list, err = uc.List(ctx, dto.ProductQuery{Search: "destor"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "DES-01", list.Items[0].SKU)
}

func TestWarehouseUseCase_CodigoDuplicado(t *testing.T) {
	_, wuc, _ := newProductUseCase()
	ctx := context.Background()
	_, err := wuc.Register(ctx, "BOD-01", "Principal", "")
	require.NoError(t, err)
	_, err = wuc.Register(ctx, "BOD-01", "Otra", "")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := wuc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = wuc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
