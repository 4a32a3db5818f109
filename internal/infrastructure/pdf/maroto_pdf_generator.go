// Package pdf genera la versión imprimible de los documentos de inventario
// (recepciones, despachos, traslados y ajustes).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento  │  N° Documento + Estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Tercero / Referencia / Bodega / Fechas               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | SKU | Producto | Cant | P.Unit | Subtotal         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	│  FOOTER: QR con el número + sello de validación + firmas     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appdocument "github.com/jhoicas/stockflow-api/internal/application/document"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDone    = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorVoid    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var titles = map[entity.DocumentType]string{
	entity.DocumentTypeReceipt:    "RECEPCIÓN DE MERCANCÍA",
	entity.DocumentTypeDelivery:   "DESPACHO DE MERCANCÍA",
	entity.DocumentTypeTransfer:   "TRASLADO ENTRE BODEGAS",
	entity.DocumentTypeAdjustment: "AJUSTE DE INVENTARIO",
}

var statusLabels = map[entity.DocumentStatus]string{
	entity.DocumentStatusDraft:     "BORRADOR",
	entity.DocumentStatusWaiting:   "EN ESPERA",
	entity.DocumentStatusReady:     "LISTO",
	entity.DocumentStatusDone:      "VALIDADO",
	entity.DocumentStatusCancelled: "ANULADO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appdocument.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa document.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador. company aparece como autor y en el encabezado.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(_ context.Context, data appdocument.DocumentPDFData) ([]byte, error) {
	if data.Document == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	doc := data.Document

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.DocumentNumber, true).
		WithAuthor(nonEmpty(g.company, "StockFlow"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, g.company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRows(doc, data.WarehouseName)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(data.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *entity.Document, company string) core.Row {
	statusColor := colorGray
	switch doc.Status {
	case entity.DocumentStatusDone:
		statusColor = colorDone
	case entity.DocumentStatusCancelled:
		statusColor = colorVoid
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "StockFlow"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(titles[doc.DocumentType], strings.ToUpper(string(doc.DocumentType))), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(doc.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New(nonEmpty(statusLabels[doc.Status], string(doc.Status)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9, Color: statusColor,
			}),
			text.New("Creado: "+doc.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func infoRows(doc *entity.Document, warehouseName string) []core.Row {
	scheduled := "-"
	if doc.ScheduledDate != nil {
		scheduled = doc.ScheduledDate.Format("02/01/2006")
	}
	partnerLabel := "TERCERO"
	switch doc.DocumentType {
	case entity.DocumentTypeReceipt:
		partnerLabel = "PROVEEDOR"
	case entity.DocumentTypeDelivery:
		partnerLabel = "CLIENTE"
	}

	return []core.Row{
		row.New(12).Add(
			col.New(6).Add(
				text.New(partnerLabel, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
				text.New(nonEmpty(doc.PartnerName, "-"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			),
			col.New(6).Add(
				text.New("REFERENCIA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
				text.New(nonEmpty(doc.ReferenceNumber, "-"), props.Text{Size: 9, Top: 6}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Bodega: %s   |   Fecha programada: %s",
				nonEmpty(warehouseName, "-"), scheduled,
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		)),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Cant.", 1, align.Right),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func tableLineRows(lines []appdocument.DocumentLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		qty := l.Quantity
		if qty < 0 {
			qty = -qty
		}
		subtotal := l.UnitPrice.Mul(decimal.NewFromInt(qty))
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.LineNo), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(l.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(formatQuantity(l.Quantity, l.UnitOfMeasure), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(doc *entity.Document) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New("$"+formatMoney(doc.Total()), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// footerRows: QR con el número del documento, sello de validación y espacio para firmas.
func footerRows(doc *entity.Document) []core.Row {
	stamp := "Pendiente de validación"
	if doc.ValidatedAt != nil {
		stamp = fmt.Sprintf("Validado el %s por %s",
			doc.ValidatedAt.Format("02/01/2006 15:04"), nonEmpty(doc.ValidatedBy, "-"))
	}
	if doc.Status == entity.DocumentStatusCancelled {
		stamp = "Documento anulado: no afecta inventario"
	}

	return []core.Row{
		row.New(35).Add(
			col.New(3).Add(code.NewQr(doc.DocumentNumber, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New(stamp, props.Text{Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary}),
				text.New("Escanee el código para ubicar el documento en el sistema.", props.Text{
					Size: 8, Top: 12, Left: 3, Color: colorGray,
				}),
			),
		),
		row.New(15).Add(
			col.New(6).Add(text.New("______________________\nEntrega", props.Text{Size: 8, Align: align.Center, Top: 6})),
			col.New(6).Add(text.New("______________________\nRecibe", props.Text{Size: 8, Align: align.Center, Top: 6})),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatQuantity(q int64, unit string) string {
	if unit == "" {
		return fmt.Sprint(q)
	}
	return fmt.Sprintf("%d %s", q, unit)
}

// formatMoney formatea con puntos de miles y coma decimal (2 decimales).
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}
