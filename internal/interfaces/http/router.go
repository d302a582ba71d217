package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/feraben-crm/internal/application/accounts"
	appanalytics "github.com/jhoicas/feraben-crm/internal/application/analytics"
	"github.com/jhoicas/feraben-crm/internal/application/auth"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ClientUC    *accounts.ClientUseCase
	MovementUC  *accounts.MovementUseCase
	StatementUC *accounts.StatementUseCase
	ExportUC    *accounts.ExportUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Vendedores (admin)
	sellers := protected.Group("/sellers", adminOnly)
	sellers.Post("/", authHandler.CreateSeller)
	sellers.Get("/", authHandler.ListSellers)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", anyRole, dashboardHandler.GetSummary)

	// Clientes y estado de cuenta (admin ve todo, vendedor su cartera)
	clients := protected.Group("/clients", anyRole)
	clientHandler := NewClientHandler(deps.ClientUC, deps.MovementUC)
	statementHandler := NewStatementHandler(deps.StatementUC, deps.ExportUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Get("/:id/movements", clientHandler.Movements)
	clients.Get("/:id/statement", statementHandler.Get)
	clients.Get("/:id/statement/export", statementHandler.Export)

	// Movimientos (admin)
	movements := protected.Group("/movements", adminOnly)
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)
}
