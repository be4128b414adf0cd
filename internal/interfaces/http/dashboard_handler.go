package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leiritrix/crm-api/internal/application/analytics"
	"github.com/leiritrix/crm-api/internal/application/dto"
)

// defaultMonths meses de la serie mensual cuando no se pide otra cosa.
const defaultMonths = 6

// DashboardHandler métricas, serie mensual y alertas de fidelización.
// Todas las respuestas respetan el scope del usuario autenticado.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Metrics devuelve los agregados del dashboard.
// GET /api/dashboard/metrics
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.uc.Metrics(c.Context(), GetUser(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(metrics)
}

// MonthlyStats devuelve la serie mensual, del mes más antiguo al actual.
// GET /api/dashboard/monthly-stats?months=N (default 6)
func (h *DashboardHandler) MonthlyStats(c *fiber.Ctx) error {
	months := c.QueryInt("months", defaultMonths)
	if months < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "months debe ser >= 1"})
	}
	stats, err := h.uc.MonthlyStats(c.Context(), GetUser(c), months)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stats)
}

// LoyaltyAlerts devuelve los contratos active cuya fidelización termina pronto.
// GET /api/alerts/loyalty
func (h *DashboardHandler) LoyaltyAlerts(c *fiber.Ctx) error {
	alerts, err := h.uc.LoyaltyAlerts(c.Context(), GetUser(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(alerts)
}
