package repository

import (
	"context"
	"time"

	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
)

// AnalyticsRepository define las consultas de lectura para dashboard, serie
// mensual y alertas de fidelización. Las implementaciones son read-only.
//
// Todas las consultas reciben un Scope: para un salesperson solo cuentan sus
// propias ventas; para admin/backoffice el scope es irrestricto.
type AnalyticsRepository interface {
	// CountSales total de ventas dentro del scope.
	CountSales(ctx context.Context, scope domain.Scope) (int64, error)

	// CountByStatus conteo agrupado por estado (solo estados presentes).
	CountByStatus(ctx context.Context, scope domain.Scope) (map[string]int64, error)

	// CountByCategory conteo agrupado por categoría (solo categorías presentes).
	CountByCategory(ctx context.Context, scope domain.Scope) (map[string]int64, error)

	// SumActiveContractValue suma de contract_value sobre ventas con status=active.
	SumActiveContractValue(ctx context.Context, scope domain.Scope) (float64, error)

	// SumCommission suma de commission sobre ventas con comisión asignada.
	SumCommission(ctx context.Context, scope domain.Scope) (float64, error)

	// CountCreatedSince ventas con created_at >= since.
	CountCreatedSince(ctx context.Context, scope domain.Scope, since time.Time) (int64, error)

	// CountCreatedBetween ventas con created_at en [start, end).
	CountCreatedBetween(ctx context.Context, scope domain.Scope, start, end time.Time) (int64, error)

	// SumActiveValueBetween suma de contract_value de ventas active creadas en [start, end).
	SumActiveValueBetween(ctx context.Context, scope domain.Scope, start, end time.Time) (float64, error)

	// ListLoyaltyExpiring ventas active con loyalty_end_date asignado y <= before,
	// ordenadas por loyalty_end_date ascendente, máximo AlertLimit resultados.
	ListLoyaltyExpiring(ctx context.Context, scope domain.Scope, before time.Time) ([]*entity.Sale, error)
}
