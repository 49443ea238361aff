package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/buyitem-api/internal/application/dto"
	"github.com/jhoicas/buyitem-api/internal/application/usecase"
)

// ItemHandler maneja las peticiones HTTP CRUD para Item.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener item por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err.Error())
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar items
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /items/all [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByIDs godoc
// @Summary      Obtener items por lista de IDs
// @Description  Devuelve solo los items existentes; los IDs inexistentes van en el header X-Missing-Ids.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        idList  query  string  true  "IDs separados por coma"
// @Success      200     {array}   dto.ItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /items/getItems [get]
func (h *ItemHandler) GetByIDs(c *fiber.Ctx) error {
	ids, err := queryIDList(c)
	if err != nil {
		return invalidID(c, err.Error())
	}
	out, err := h.uc.GetByIDs(c.Context(), ids)
	if err != nil {
		return writeError(c, err)
	}
	setMissingIDs(c, out.Missing)
	return c.JSON(out.Items)
}

// Update godoc
// @Summary      Actualizar item (merge)
// @Description  Solo sobrescribe los campos presentes; los strings vacíos se ignoran.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del item"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /items/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err.Error())
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateList godoc
// @Summary      Actualizar varios items (merge)
// @Description  Aplica el mismo merge a todos los IDs; si alguno no existe no se modifica ninguno.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        idList  query  string  true  "IDs separados por coma"
// @Param        body    body   dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200     {array}   dto.ItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /items/updateItems [patch]
func (h *ItemHandler) UpdateList(c *fiber.Ctx) error {
	ids, err := queryIDList(c)
	if err != nil {
		return invalidID(c, err.Error())
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateList(c.Context(), ids, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar item
// @Tags         items
// @Security     Bearer
// @Param        id   path  int  true  "ID del item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err.Error())
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
