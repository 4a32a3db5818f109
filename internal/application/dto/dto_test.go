package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

func TestSelector_ParTienePrioridad(t *testing.T) {
	req := dto.UpdateDocumentStatusRequest{Status: "done", WarehouseID: "w0", FromWarehouseID: "w1", ToWarehouseID: "w2"}
	assert.Equal(t, entity.WarehousePair{From: "w1", To: "w2"}, req.Selector())
}

func TestSelector_ParIncompletoSeConserva(t *testing.T) {
	req := dto.UpdateDocumentStatusRequest{Status: "done", FromWarehouseID: "w1"}
	assert.Equal(t, entity.WarehousePair{From: "w1"}, req.Selector())
}

func TestSelector_BodegaUnica(t *testing.T) {
	req := dto.UpdateDocumentStatusRequest{Status: "done", WarehouseID: "w0"}
	assert.Equal(t, entity.SingleWarehouse{ID: "w0"}, req.Selector())
}

func TestSelector_SinBodegas(t *testing.T) {
	req := dto.UpdateDocumentStatusRequest{Status: "waiting"}
	assert.Nil(t, req.Selector())
}

func TestToDocumentResponse_Total(t *testing.T) {
	doc := &entity.Document{
		ID:           "d1",
		DocumentType: entity.DocumentTypeAdjustment,
		Status:       entity.DocumentStatusDraft,
		Lines: []entity.DocumentLine{
			{ID: "l1", LineNo: 1, ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			{ID: "l2", LineNo: 2, ProductID: "p2", Quantity: -3, UnitPrice: decimal.RequireFromString("1.5")},
		},
	}
	resp := dto.ToDocumentResponse(doc)
	assert.True(t, decimal.RequireFromString("24.5").Equal(resp.Total))
	assert.Len(t, resp.Lines, 2)
	assert.Equal(t, "adjustment", resp.DocumentType)
}

func TestPageRequest_DefaultPage(t *testing.T) {
	p := dto.PageRequest{}
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)
}
