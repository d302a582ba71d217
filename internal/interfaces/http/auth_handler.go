package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/feraben-crm/internal/application/auth"
	"github.com/jhoicas/feraben-crm/internal/application/dto"
)

// AuthHandler maneja login y alta de vendedores.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSeller godoc
// @Summary      Registrar vendedor
// @Tags         sellers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSellerRequest  true  "Datos del vendedor"
// @Success      201   {object}  dto.SellerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sellers [post]
func (h *AuthHandler) CreateSeller(c *fiber.Ctx) error {
	var in dto.CreateSellerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RegisterSeller(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSellers godoc
// @Summary      Listar vendedores
// @Tags         sellers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SellerResponse
// @Router       /api/sellers [get]
func (h *AuthHandler) ListSellers(c *fiber.Ctx) error {
	out, err := h.uc.ListSellers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
