package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leiritrix/crm-api/internal/application/analytics"
	"github.com/leiritrix/crm-api/internal/application/auth"
	"github.com/leiritrix/crm-api/internal/application/reports"
	"github.com/leiritrix/crm-api/internal/application/usecase"
	"github.com/leiritrix/crm-api/internal/domain/entity"
	"github.com/leiritrix/crm-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	SaleUC      *usecase.SaleUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *reports.ReportUseCase
	UserRepo    repository.UserRepository
	JWTSecret   string
	AppName     string
	AppVersion  string
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.UserUC)
	saleHandler := NewSaleHandler(deps.SaleUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	reportHandler := NewReportHandler(deps.ReportUC)

	// Público
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": deps.AppName, "version": deps.AppVersion})
	})
	api.Post("/auth/login", authHandler.Login)
	api.Post("/init", authHandler.Init)

	// Rutas protegidas (requieren Bearer Token; el middleware carga el usuario)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.UserRepo))

	adminOnly := RequireRole(entity.RoleAdmin)
	staffOnly := RequireRole(entity.RoleAdmin, entity.RoleBackoffice)

	// Auth (protegido)
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Put("/:id/toggle-active", userHandler.ToggleActive)
	users.Put("/:id/role", userHandler.ChangeRole)

	// Sales
	sales := protected.Group("/sales")
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.Get)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", staffOnly, saleHandler.Delete)
	sales.Put("/:id/commission", staffOnly, saleHandler.AssignCommission)

	// Dashboard y alertas (cualquier usuario autenticado, con scope por rol)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/metrics", dashboardHandler.Metrics)
	dashboard.Get("/monthly-stats", dashboardHandler.MonthlyStats)
	protected.Get("/alerts/loyalty", dashboardHandler.LoyaltyAlerts)

	// Reportes (admin/backoffice)
	reportsGroup := protected.Group("/reports", staffOnly)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/sales/pdf", reportHandler.SalesPDF)
}
