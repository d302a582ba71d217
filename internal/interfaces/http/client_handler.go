package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/feraben-crm/internal/application/accounts"
)

// ClientHandler maneja la cartera de clientes y su historial.
type ClientHandler struct {
	clients   *accounts.ClientUseCase
	movements *accounts.MovementUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(clients *accounts.ClientUseCase, movements *accounts.MovementUseCase) *ClientHandler {
	return &ClientHandler{clients: clients, movements: movements}
}

// List godoc
// @Summary      Listar clientes con saldo
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.clients.List(c.UserContext(), CurrentViewer(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.clients.Get(c.UserContext(), CurrentViewer(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos del cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/movements [get]
func (h *ClientHandler) Movements(c *fiber.Ctx) error {
	out, err := h.movements.ListByClient(c.UserContext(), CurrentViewer(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
