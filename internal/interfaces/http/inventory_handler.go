package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/buyitem-api/internal/application/dto"
	"github.com/jhoicas/buyitem-api/internal/application/inventory"
	stockops "github.com/jhoicas/buyitem-api/internal/domain/inventory"
)

// InventoryHandler maneja dispatch, block, restock, reservas y el reporte de stock.
type InventoryHandler struct {
	stock  *inventory.StockUseCase
	report *inventory.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, report *inventory.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, report: report}
}

// Dispatch godoc
// @Summary      Despachar stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID del item"
// @Param        body  body  dto.StockQuantityRequest  true  "quantity > 0"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /items/{id}/dispatch [post]
func (h *InventoryHandler) Dispatch(c *fiber.Ctx) error {
	return h.apply(c, stockops.OperationDispatch, false)
}

// Block godoc
// @Summary      Bloquear (reservar) stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID del item"
// @Param        body  body  dto.StockQuantityRequest  true  "quantity > 0"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /items/{id}/block [post]
func (h *InventoryHandler) Block(c *fiber.Ctx) error {
	return h.apply(c, stockops.OperationBlock, false)
}

// BlockForUser godoc
// @Summary      Bloquear stock a nombre de un usuario
// @Description  Descuenta stock y registra la reserva del usuario.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID del item"
// @Param        user  path  int  true  "ID del usuario"
// @Param        body  body  dto.StockQuantityRequest  true  "quantity > 0"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /items/{id}/{user}/block [post]
func (h *InventoryHandler) BlockForUser(c *fiber.Ctx) error {
	return h.apply(c, stockops.OperationBlock, true)
}

// Restock godoc
// @Summary      Reponer stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID del item"
// @Param        body  body  dto.StockQuantityRequest  true  "quantity > 0"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /items/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	return h.apply(c, stockops.OperationRestock, false)
}

func (h *InventoryHandler) apply(c *fiber.Ctx, operation string, withUser bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err.Error())
	}
	var userID *int64
	if withUser {
		uid, err := paramID(c, "user")
		if err != nil {
			return invalidID(c, err.Error())
		}
		userID = &uid
	}
	var in dto.StockQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.stock.ApplyFromRequest(c.Context(), operation, id, userID, in); err != nil {
		return writeError(c, err)
	}
	// 200 sin cuerpo; SendStatus escribiría "OK".
	c.Status(fiber.StatusOK)
	return nil
}

// Reservations godoc
// @Summary      Reservas por usuario de un item
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del item"
// @Success      200  {array}   dto.ReservationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /items/{id}/reservations [get]
func (h *InventoryHandler) Reservations(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err.Error())
	}
	out, err := h.stock.Reservations(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockReport godoc
// @Summary      Reporte de stock en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /items/report [get]
func (h *InventoryHandler) StockReport(c *fiber.Ctx) error {
	doc, err := h.report.StockReportPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="stock-report.pdf"`)
	return c.Send(doc)
}
