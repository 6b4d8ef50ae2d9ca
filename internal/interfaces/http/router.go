package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventory-movements-api/internal/application/analytics"
	"github.com/jhoicas/inventory-movements-api/internal/application/auth"
	"github.com/jhoicas/inventory-movements-api/internal/application/inventory"
	"github.com/jhoicas/inventory-movements-api/internal/application/usecase"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	MovementUC  *inventory.MovementUseCase
	ReconcileUC *inventory.ReconcileUseCase
	SummaryUC   *analytics.SummaryUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	admin := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleWarehouse, entity.RoleSeller)
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleWarehouse)
	salesRoles := RequireRole(entity.RoleAdmin, entity.RoleSeller)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/users", admin, authHandler.Register)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ReconcileUC)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/options", anyRole, productHandler.Options)
	products.Post("/", stockRoles, productHandler.Create)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", stockRoles, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)
	products.Get("/:id/movements", anyRole, productHandler.History)
	products.Get("/:id/movements/pdf", anyRole, productHandler.HistoryPDF)
	products.Post("/:id/reconcile", admin, productHandler.Reconcile)

	// Movements: un grupo por tipo
	mountMovements(protected.Group("/inputs", stockRoles), NewMovementHandler(deps.MovementUC, entity.MovementTypeInput))
	mountMovements(protected.Group("/outputs", stockRoles), NewMovementHandler(deps.MovementUC, entity.MovementTypeOutput))
	mountMovements(protected.Group("/sales", salesRoles), NewMovementHandler(deps.MovementUC, entity.MovementTypeSale))

	// Inventory summary
	summaryHandler := NewSummaryHandler(deps.SummaryUC)
	protected.Get("/inventory/summary", anyRole, summaryHandler.GetSummary)
}

func mountMovements(g fiber.Router, h *MovementHandler) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
