package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// StockHandler consultas de stock, reservas y kardex (protegido).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ByProduct godoc
// @Summary      Stock de un producto en cada bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id} [get]
func (h *StockHandler) ByProduct(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un UUID")
	}
	levels, err := h.uc.ProductStock(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.ToStockLevelResponse(l))
	}
	return c.JSON(out)
}

// ByWarehouse godoc
// @Summary      Stock de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la bodega"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}   dto.StockLevelResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/stock/warehouses/{id} [get]
func (h *StockHandler) ByWarehouse(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un UUID")
	}
	var page dto.PageRequest
	if ok, err := bindQuery(c, &page); !ok {
		return err
	}
	levels, err := h.uc.WarehouseStock(c.UserContext(), id, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.ToStockLevelResponse(l))
	}
	return c.JSON(out)
}

// Availability godoc
// @Summary      Verificar disponibilidad
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Param        quantity      query  int     true  "Cantidad requerida"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/availability [get]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	var q dto.AvailabilityQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	available, err := h.uc.CheckAvailability(c.UserContext(), q.ProductID, q.WarehouseID, q.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		Quantity:    q.Quantity,
		Available:   available,
	})
}

// Reserve godoc
// @Summary      Reservar stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ReservationRequest  true  "Producto, bodega y cantidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/reservations [post]
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReservationRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	err := h.uc.Reserve(c.UserContext(), inventory.ReservationInput{
		ProductID: in.ProductID, WarehouseID: in.WarehouseID, Quantity: in.Quantity, ActorID: GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Release godoc
// @Summary      Liberar stock reservado
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ReservationRequest  true  "Producto, bodega y cantidad"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/reservations/release [post]
func (h *StockHandler) Release(c *fiber.Ctx) error {
	var in dto.ReservationRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	err := h.uc.Release(c.UserContext(), inventory.ReservationInput{
		ProductID: in.ProductID, WarehouseID: in.WarehouseID, Quantity: in.Quantity, ActorID: GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements godoc
// @Summary      Kardex de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "ID del producto"
// @Param        warehouse_id  query  string  false  "Bodega origen o destino"
// @Param        document_id   query  string  false  "ID del documento"
// @Param        from          query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, inclusive)"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	filter, err := movementFilter(q)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	list, err := h.uc.Movements(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	})
}

// ExportMovements godoc
// @Summary      Exportar kardex a Excel
// @Tags         movements
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        product_id    query  string  false  "ID del producto"
// @Param        warehouse_id  query  string  false  "Bodega origen o destino"
// @Param        from          query  string  false  "Desde"
// @Param        to            query  string  false  "Hasta"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/export [get]
func (h *StockHandler) ExportMovements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	filter, err := movementFilter(q)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	data, filename, err := h.uc.ExportMovements(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func movementFilter(q dto.MovementQuery) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		DocumentID:  q.DocumentID,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	if q.From != "" {
		from, _, err := parseDate(q.From)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if q.To != "" {
		to, dateOnly, err := parseDate(q.To)
		if err != nil {
			return filter, err
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &to
	}
	return filter, nil
}

// parseDate acepta RFC3339 o YYYY-MM-DD; dateOnly indica el segundo formato.
func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	if t, err = time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("fecha inválida %q: use RFC3339 o YYYY-MM-DD", s)
}
