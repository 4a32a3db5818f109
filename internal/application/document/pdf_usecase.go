package document

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// PDFUseCase genera la versión imprimible de un documento de inventario.
type PDFUseCase struct {
	repos     repository.Repositories
	generator DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(repos repository.Repositories, generator DocumentPDFGenerator) *PDFUseCase {
	return &PDFUseCase{repos: repos, generator: generator}
}

// DownloadDocumentPDF carga el documento, enriquece sus líneas con el producto y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el documento no existe.
func (uc *PDFUseCase) DownloadDocumentPDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.repos.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}

	data := DocumentPDFData{Document: doc}
	for _, l := range doc.Lines {
		line := DocumentLineForPDF{DocumentLine: l, ProductName: "Producto " + l.ProductID}
		if p, pErr := uc.repos.Products.GetByID(ctx, l.ProductID); pErr == nil && p != nil {
			line.SKU = p.SKU
			line.ProductName = p.Name
			line.UnitOfMeasure = p.UnitOfMeasure
		}
		data.Lines = append(data.Lines, line)
	}
	if doc.WarehouseID != "" {
		if w, wErr := uc.repos.Warehouses.GetByID(ctx, doc.WarehouseID); wErr == nil && w != nil {
			data.WarehouseName = w.Name
		}
	}

	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, doc.DocumentNumber + ".pdf", nil
}
