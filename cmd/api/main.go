package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/feraben-crm/internal/application/accounts"
	appanalytics "github.com/jhoicas/feraben-crm/internal/application/analytics"
	"github.com/jhoicas/feraben-crm/internal/application/auth"
	infrapdf "github.com/jhoicas/feraben-crm/internal/infrastructure/pdf"
	"github.com/jhoicas/feraben-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/feraben-crm/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/feraben-crm/internal/interfaces/http"
	"github.com/jhoicas/feraben-crm/pkg/config"
	"github.com/jhoicas/feraben-crm/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.JWT.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.DefaultPoolOptions)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sellerRepo := postgres.NewSellerRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)

	statementUC := accounts.NewStatementUseCase(clientRepo, movementRepo)
	exportUC := accounts.NewExportUseCase(
		statementUC,
		infrapdf.NewStatementGenerator(cfg.Export.CompanyName),
		spreadsheet.NewStatementGenerator(cfg.Export.CompanyName),
	)
	authUC := auth.NewAuthUseCase(sellerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Feraben CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ClientUC:    accounts.NewClientUseCase(clientRepo, movementRepo),
		MovementUC:  accounts.NewMovementUseCase(clientRepo, movementRepo),
		StatementUC: statementUC,
		ExportUC:    exportUC,
		DashboardUC: appanalytics.NewDashboardUseCase(clientRepo, movementRepo),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
