package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/application/reports"
	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/repository"
)

// ReportHandler reporte de ventas (rutas restringidas a admin/backoffice en el router).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales devuelve el reporte filtrado con resumen de totales.
// GET /api/reports/sales?start_date&end_date&category&status&seller_id
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	f, err := h.parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	report, err := h.uc.SalesReport(c.Context(), f)
	if err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(report)
}

// SalesPDF devuelve el mismo reporte renderizado como PDF.
// GET /api/reports/sales/pdf
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	f, err := h.parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	pdfBytes, err := h.uc.SalesReportPDF(c.Context(), f)
	if err != nil {
		return h.reportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ventas.pdf"`)
	return c.Send(pdfBytes)
}

func (h *ReportHandler) reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtro inválido"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// parseFilter interpreta los query params. Las fechas aceptan RFC3339 o
// "2006-01-02"; una end_date solo fecha se extiende al final del día para que
// el rango sea inclusivo en ambos extremos.
func (h *ReportHandler) parseFilter(c *fiber.Ctx) (repository.ReportFilter, error) {
	f := repository.ReportFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		SellerID: c.Query("seller_id"),
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDate(raw, false)
		if err != nil {
			return f, errors.New("start_date inválida")
		}
		f.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDate(raw, true)
		if err != nil {
			return f, errors.New("end_date inválida")
		}
		f.EndDate = &t
	}
	return f, nil
}

func parseDate(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t.UTC(), nil
}
