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
	_ "github.com/jhoicas/inventory-movements-api/docs"
	"github.com/jhoicas/inventory-movements-api/internal/application/analytics"
	"github.com/jhoicas/inventory-movements-api/internal/application/auth"
	"github.com/jhoicas/inventory-movements-api/internal/application/inventory"
	"github.com/jhoicas/inventory-movements-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/inventory-movements-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-movements-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-movements-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-movements-api/pkg/config"
	"github.com/jhoicas/inventory-movements-api/pkg/logger"
)

// @title                       Inventory Movements API
// @version                     1.0
// @description                 Productos, entradas, salidas y ventas con stock conciliado.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("delete_policy", cfg.Inventory.ProductDeletePolicy).
		Str("stock_edit_policy", cfg.Inventory.StockEditPolicy).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	summaryRepo := postgres.NewSummaryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reconcileUC := inventory.NewReconcileUseCase(txRunner, movementRepo, productRepo, log.Component("reconcile"))
	movementUC := inventory.NewMovementUseCase(txRunner, movementRepo, log.Component("movements"))
	productUC := usecase.NewProductUseCase(
		txRunner, productRepo, movementRepo,
		infrapdf.NewHistoryPDFGenerator(cfg.App.Name),
		usecase.ProductPolicy{
			DeletePolicy:    cfg.Inventory.ProductDeletePolicy,
			StockEditPolicy: cfg.Inventory.StockEditPolicy,
		},
		log.Component("products"),
	)
	summaryUC := analytics.NewSummaryUseCase(summaryRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Movements API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		MovementUC:  movementUC,
		ReconcileUC: reconcileUC,
		SummaryUC:   summaryUC,
		AuthUC:      authUC,
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
