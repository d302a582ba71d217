package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/feraben-crm/internal/application/accounts"
	"github.com/jhoicas/feraben-crm/internal/application/dto"
)

// StatementHandler estado de cuenta en JSON y su exportación a PDF o Excel.
type StatementHandler struct {
	statements *accounts.StatementUseCase
	exports    *accounts.ExportUseCase
}

// NewStatementHandler construye el handler.
func NewStatementHandler(statements *accounts.StatementUseCase, exports *accounts.ExportUseCase) *StatementHandler {
	return &StatementHandler{statements: statements, exports: exports}
}

// Get godoc
// @Summary      Estado de cuenta del cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del cliente"
// @Param        filtro  query  string  false  "completo | ultimo_saldo_cero | fechas"
// @Param        desde   query  string  false  "aaaa-mm-dd (filtro fechas)"
// @Param        hasta   query  string  false  "aaaa-mm-dd (filtro fechas)"
// @Success      200  {object}  dto.StatementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/statement [get]
func (h *StatementHandler) Get(c *fiber.Ctx) error {
	var q dto.StatementQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	policy, rng, err := accounts.ParseStatementQuery(q)
	if err != nil {
		return writeError(c, err)
	}
	st, err := h.statements.BuildFor(c.UserContext(), CurrentViewer(c), c.Params("id"), policy, rng)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(accounts.ToStatementResponse(st))
}

// Export godoc
// @Summary      Exportar estado de cuenta
// @Tags         clients
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id       path   string  true   "ID del cliente"
// @Param        formato  query  string  false  "pdf | excel"
// @Param        filtro   query  string  false  "completo | ultimo_saldo_cero | fechas"
// @Param        desde    query  string  false  "aaaa-mm-dd"
// @Param        hasta    query  string  false  "aaaa-mm-dd"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/statement/export [get]
func (h *StatementHandler) Export(c *fiber.Ctx) error {
	var q dto.StatementQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	policy, rng, err := accounts.ParseStatementQuery(q)
	if err != nil {
		return writeError(c, err)
	}
	file, err := h.exports.ExportStatement(c.UserContext(), CurrentViewer(c), c.Params("id"), q.Format, policy, rng)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Content)
}
