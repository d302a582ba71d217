package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/feraben-crm/internal/application/accounts"
	"github.com/jhoicas/feraben-crm/internal/application/dto"
	"github.com/jhoicas/feraben-crm/internal/domain"
)

// MovementHandler ABM de movimientos (solo admin).
type MovementHandler struct {
	uc *accounts.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *accounts.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  El importe se normaliza según el tipo: pagos y devoluciones se guardan negativos.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar todos los movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar movimiento
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del movimiento"
// @Param        body  body  dto.MovementRequest  true  "Datos del movimiento"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         movements
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return writeError(c, domain.NewValidationError("id", "requerido"))
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
