package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/feraben-crm/internal/application/analytics"
)

// DashboardHandler maneja el resumen de cartera.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen de la cartera visible para el usuario.
// GET /api/dashboard
//
// Respuesta: DashboardDTO (total_clientes, clientes_con_deuda, total_deuda,
// movimientos_este_mes, mes). Un vendedor solo cuenta sus clientes y movimientos.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), CurrentViewer(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
