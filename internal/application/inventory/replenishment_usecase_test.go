package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

func int64Ptr(v int64) *int64 { return &v }

func TestSuggestedOrderQty(t *testing.T) {
	assert.Equal(t, int64(30), inventory.SuggestedOrderQty(repository.ReplenishmentItem{ReorderPoint: 20, Available: 0}))
	assert.Equal(t, int64(11), inventory.SuggestedOrderQty(repository.ReplenishmentItem{ReorderPoint: 7, Available: 0}), "11 = ceil(10.5)")
	assert.Equal(t, int64(45), inventory.SuggestedOrderQty(repository.ReplenishmentItem{ReorderPoint: 20, Available: 5, MaxStockLevel: int64Ptr(50)}))
	assert.Equal(t, int64(0), inventory.SuggestedOrderQty(repository.ReplenishmentItem{ReorderPoint: 20, Available: 20, MaxStockLevel: int64Ptr(10)}))
}

func TestLowStock_OrdenaPorDeficit(t *testing.T) {
	_, repos := newRepos(t)
	ctx := context.Background()
	other := uuid.NewString()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: other, SKU: "CLA-001", Name: "Clavo", UnitOfMeasure: "und",
		UnitPrice: decimal.NewFromInt(50), ReorderPoint: 5, MaxStockLevel: int64Ptr(40), IsActive: true,
	}))
	require.NoError(t, repos.Stock.Increase(ctx, prodID, whID, 15)) // déficit 5
	require.NoError(t, repos.Stock.Increase(ctx, other, whID, 100)) // sobre el reorden

	uc := inventory.NewReplenishmentUseCase(repos.Stock)
	items, err := uc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "TOR-001", items[0].SKU)
	assert.Equal(t, int64(5), items[0].Deficit)
	assert.Equal(t, int64(15), items[0].SuggestedOrderQty)
	assert.True(t, decimal.NewFromInt(3750).Equal(items[0].EstimatedOrderCost))
	assert.Equal(t, 1, items[0].Priority)

	require.NoError(t, repos.Stock.Decrease(ctx, other, whID, 100))
	items, err = uc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "CLA-001", items[0].SKU, "a igual déficit se desempata por SKU")
	assert.Equal(t, "TOR-001", items[1].SKU)
	assert.Equal(t, 2, items[1].Priority)
}
