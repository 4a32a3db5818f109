package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

func TestExportMovements(t *testing.T) {
	at := time.Date(2025, 5, 20, 9, 15, 0, 0, time.UTC)
	movements := []*entity.StockMovement{
		{
			ID: "m-2", MovementType: entity.MovementTypeTRANSFER, DocumentID: "d-2", ProductID: "p-1",
			FromWarehouseID: "w-1", ToWarehouseID: "w-2", Quantity: 4,
			UnitPrice: decimal.RequireFromString("12.5"), ReferenceNumber: "TRF-2025-001", CreatedBy: "u-1", CreatedAt: at,
		},
		{
			ID: "m-1", MovementType: entity.MovementTypeIN, ProductID: "p-1", ToWarehouseID: "w-1",
			Quantity: 10, ReferenceNumber: "RCP-2025-001", CreatedAt: at.Add(-time.Hour),
		},
	}

	out, err := NewExcelMovementExporter().ExportMovements(context.Background(), movements)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Fecha", rows[0][0])
	assert.Equal(t, "Usuario", rows[0][9])

	assert.Equal(t, []string{
		"2025-05-20 09:15:00", "TRANSFER", "d-2", "p-1", "w-1", "w-2", "4", "12.5", "TRF-2025-001", "u-1",
	}, rows[1])
	assert.Equal(t, "IN", rows[2][1])
	assert.Equal(t, "", rows[2][4], "sin bodega origen")
	assert.Equal(t, "10", rows[2][6])
}

func TestExportMovements_SoloEncabezados(t *testing.T) {
	out, err := NewExcelMovementExporter().ExportMovements(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExportMovements_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExcelMovementExporter().ExportMovements(ctx, []*entity.StockMovement{{ID: "m"}})
	assert.ErrorIs(t, err, context.Canceled)
}
