package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdocument "github.com/jhoicas/stockflow-api/internal/application/document"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "999,90", formatMoney(decimal.RequireFromString("999.9")))
	assert.Equal(t, "25.000,00", formatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "1.234.567,50", formatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-1.000,00", formatMoney(decimal.NewFromInt(-1000)))
}

func TestGenerateDocumentPDF(t *testing.T) {
	validated := time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC)
	doc := &entity.Document{
		ID: "d-1", DocumentNumber: "ADJ-2025-004", DocumentType: entity.DocumentTypeAdjustment,
		Status: entity.DocumentStatusDone, PartnerName: "Conteo cíclico",
		CreatedAt: validated.Add(-time.Hour), ValidatedAt: &validated, ValidatedBy: "u-9",
		Lines: []entity.DocumentLine{
			{LineNo: 1, ProductID: "p1", Quantity: -3, UnitPrice: decimal.NewFromInt(1500)},
			{LineNo: 2, ProductID: "p2", Quantity: 10, UnitPrice: decimal.RequireFromString("2.5")},
		},
	}
	data := appdocument.DocumentPDFData{Document: doc, WarehouseName: "Principal"}
	for i, l := range doc.Lines {
		data.Lines = append(data.Lines, appdocument.DocumentLineForPDF{
			DocumentLine: l, SKU: []string{"TOR-001", "CLA-001"}[i],
			ProductName: []string{"Tornillo", "Clavo"}[i], UnitOfMeasure: "und",
		})
	}

	out, err := NewMarotoPDFGenerator("Ferretería Central").GenerateDocumentPDF(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateDocumentPDF_SinDocumento(t *testing.T) {
	_, err := NewMarotoPDFGenerator("").GenerateDocumentPDF(context.Background(), appdocument.DocumentPDFData{})
	assert.Error(t, err)
}
