package dto

import "github.com/leiritrix/crm-api/internal/domain/entity"

// ReportSummary totales del reporte, calculados sobre el conjunto devuelto.
// Las ventas sin comisión cuentan como 0 en TotalCommission.
type ReportSummary struct {
	TotalCount      int     `json:"total_count"`
	TotalValue      float64 `json:"total_value"`
	TotalCommission float64 `json:"total_commission"`
}

// ReportResponse respuesta de GET /api/reports/sales.
type ReportResponse struct {
	Sales   []*entity.Sale `json:"sales"`
	Summary ReportSummary  `json:"summary"`
}
