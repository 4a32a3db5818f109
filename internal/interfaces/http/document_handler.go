package http

import (
	"github.com/gofiber/fiber/v2"

	appdocument "github.com/jhoicas/stockflow-api/internal/application/document"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// DocumentHandler maneja las peticiones HTTP de documentos de inventario (protegido).
type DocumentHandler struct {
	uc    *appdocument.WorkflowUseCase
	pdfUC *appdocument.PDFUseCase
}

// NewDocumentHandler construye el handler. pdfUC puede ser nil.
func NewDocumentHandler(uc *appdocument.WorkflowUseCase, pdfUC *appdocument.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear documento en borrador
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	input := appdocument.CreateDocumentInput{
		Type:            entity.DocumentType(in.DocumentType),
		ReferenceNumber: in.ReferenceNumber,
		PartnerName:     in.PartnerName,
		ScheduledDate:   in.ScheduledDate,
		WarehouseID:     in.WarehouseID,
		CreatedBy:       GetUserID(c),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, appdocument.LineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Notes:     l.Notes,
		})
	}
	doc, err := h.uc.Create(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDocumentResponse(doc))
}

// GetByID godoc
// @Summary      Obtener documento con sus líneas
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un UUID")
	}
	doc, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToDocumentResponse(doc))
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "receipt|delivery|transfer|adjustment"
// @Param        status  query  string  false  "draft|waiting|ready|done|cancelled"
// @Param        search  query  string  false  "Número, referencia o tercero"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.DocumentListResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var q dto.DocumentQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	list, total, err := h.uc.List(c.UserContext(), repository.DocumentFilter{
		Type:   entity.DocumentType(q.Type),
		Status: entity.DocumentStatus(q.Status),
		Search: q.Search,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.ToDocumentResponse(d))
	}
	return c.JSON(dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	})
}

// UpdateStatus godoc
// @Summary      Cambiar estado del documento (done aplica el stock)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del documento"
// @Param        body  body  dto.UpdateDocumentStatusRequest  true  "Nuevo estado y bodegas"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un UUID")
	}
	var in dto.UpdateDocumentStatusRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	doc, err := h.uc.UpdateStatus(c.UserContext(), id, entity.DocumentStatus(in.Status), GetUserID(c), in.Selector())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToDocumentResponse(doc))
}

// Delete godoc
// @Summary      Eliminar documento en borrador
// @Tags         documents
// @Security     Bearer
// @Param        id   path  string  true  "ID del documento"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un UUID")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar documento en PDF
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	if h.pdfUC == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "generación de PDF no configurada"})
	}
	id, ok := validID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un UUID")
	}
	pdfBytes, filename, err := h.pdfUC.DownloadDocumentPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
