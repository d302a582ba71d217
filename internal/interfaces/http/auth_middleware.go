package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/feraben-crm/internal/application/dto"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/pkg/jwt"
)

// Locals keys para el vendedor autenticado en Fiber.
const (
	LocalSellerID = "seller_id"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT y deja SellerID y Role en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSellerID, claims.SellerID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole restringe la ruta a los roles indicados. Usar después de AuthMiddleware.
// Sin rol en el token responde 401; con un rol no permitido, 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetSellerID devuelve el vendedor autenticado (después del middleware de auth).
func GetSellerID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSellerID).(string)
	return s
}

// GetRole devuelve el rol del token (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// CurrentViewer arma la identidad con la que se filtra la cartera visible.
func CurrentViewer(c *fiber.Ctx) entity.Viewer {
	return entity.Viewer{SellerID: GetSellerID(c), Role: GetRole(c)}
}
