// Package report exporta el kardex a hojas de cálculo.
package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// SheetName nombre de la hoja del archivo exportado.
const SheetName = "Kardex"

var headings = []any{
	"Fecha", "Tipo", "Documento", "Producto", "Bodega origen", "Bodega destino",
	"Cantidad", "Precio unitario", "Referencia", "Usuario",
}

var _ inventory.MovementExporter = (*ExcelMovementExporter)(nil)

// ExcelMovementExporter implementa inventory.MovementExporter con excelize.
type ExcelMovementExporter struct{}

// NewExcelMovementExporter construye el exportador.
func NewExcelMovementExporter() *ExcelMovementExporter { return &ExcelMovementExporter{} }

// ExportMovements escribe un .xlsx con una fila por movimiento, en el orden recibido.
func (e *ExcelMovementExporter) ExportMovements(ctx context.Context, movements []*entity.StockMovement) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headings); err != nil {
		return nil, fmt.Errorf("xlsx: encabezados: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headings), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezados: %w", err)
	}

	for i, m := range movements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			m.CreatedAt.Format("2006-01-02 15:04:05"),
			string(m.MovementType),
			m.DocumentID,
			m.ProductID,
			m.FromWarehouseID,
			m.ToWarehouseID,
			m.Quantity,
			m.UnitPrice.InexactFloat64(),
			m.ReferenceNumber,
			m.CreatedBy,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
