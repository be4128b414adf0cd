package dto

import "github.com/leiritrix/crm-api/internal/domain/entity"

// MetricsDTO respuesta de GET /api/dashboard/metrics.
// Todos los valores respetan el scope del usuario autenticado.
type MetricsDTO struct {
	TotalSales         int64            `json:"total_sales"`
	SalesByStatus      map[string]int64 `json:"sales_by_status"`
	SalesByCategory    map[string]int64 `json:"sales_by_category"`
	TotalContractValue float64          `json:"total_contract_value"` // solo contratos active
	TotalCommission    float64          `json:"total_commission"`     // solo ventas con comisión
	SalesThisMonth     int64            `json:"sales_this_month"`     // desde el día 1 del mes (UTC)
}

// MonthlyPointDTO un punto de la serie mensual, ej: {"month": "Jan 2024", ...}.
type MonthlyPointDTO struct {
	Month string  `json:"month"`
	Sales int64   `json:"sales"`
	Value float64 `json:"value"` // contract_value de ventas active creadas en el mes
}

// LoyaltyAlertDTO venta active cuya fidelización termina pronto.
// DaysUntilEnd nunca es negativo.
type LoyaltyAlertDTO struct {
	entity.Sale
	DaysUntilEnd int `json:"days_until_end"`
}
