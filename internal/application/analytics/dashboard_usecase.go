// Package analytics contiene los casos de uso de lectura del dashboard:
// métricas agregadas, serie mensual y alertas de fin de fidelización.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
	"github.com/leiritrix/crm-api/internal/domain/repository"
)

const (
	// loyaltyAlertDays umbral de alerta: 7 meses comerciales de 30 días.
	loyaltyAlertDays = 7 * 30
	// monthStepDays paso hacia atrás de la serie mensual (mes comercial).
	monthStepDays = 30
)

// DashboardUseCase agrega las ventas visibles para el usuario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// Todas las operaciones aplican primero el scope del actor.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// Metrics construye el MetricsDTO del actor.
//
// Seis consultas contra el store; las agrupaciones y sumas van en paralelo.
// "Ventas este mes" cuenta desde el día 1 del mes calendario en curso (UTC).
func (uc *DashboardUseCase) Metrics(ctx context.Context, actor *entity.User) (*dto.MetricsDTO, error) {
	scope := domain.ScopeForUser(actor)
	now := time.Now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	type countResult struct {
		n   int64
		err error
	}
	type groupResult struct {
		m   map[string]int64
		err error
	}
	type sumResult struct {
		v   float64
		err error
	}

	totalCh := make(chan countResult, 1)
	statusCh := make(chan groupResult, 1)
	categoryCh := make(chan groupResult, 1)
	valueCh := make(chan sumResult, 1)
	commissionCh := make(chan sumResult, 1)
	monthCh := make(chan countResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountSales(ctx, scope)
		totalCh <- countResult{n, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.CountByStatus(ctx, scope)
		statusCh <- groupResult{m, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.CountByCategory(ctx, scope)
		categoryCh <- groupResult{m, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.SumActiveContractValue(ctx, scope)
		valueCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.SumCommission(ctx, scope)
		commissionCh <- sumResult{v, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountCreatedSince(ctx, scope, startOfMonth)
		monthCh <- countResult{n, err}
	}()

	total := <-totalCh
	byStatus := <-statusCh
	byCategory := <-categoryCh
	value := <-valueCh
	commission := <-commissionCh
	month := <-monthCh

	for _, err := range []error{total.err, byStatus.err, byCategory.err, value.err, commission.err, month.err} {
		if err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
	}

	return &dto.MetricsDTO{
		TotalSales:         total.n,
		SalesByStatus:      byStatus.m,
		SalesByCategory:    byCategory.m,
		TotalContractValue: value.v,
		TotalCommission:    commission.v,
		SalesThisMonth:     month.n,
	}, nil
}

// MonthlyStats devuelve `months` puntos ordenados del más antiguo al más
// reciente. Cada ventana retrocede i*30 días desde el día 1 del mes actual y
// se recorta al mes calendario que cae ahí: [día 1, día 1 del mes siguiente).
// El último punto (i=0) cubre el mes en curso, incluido hoy.
func (uc *DashboardUseCase) MonthlyStats(ctx context.Context, actor *entity.User, months int) ([]dto.MonthlyPointDTO, error) {
	scope := domain.ScopeForUser(actor)
	now := time.Now().UTC()
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := make([]dto.MonthlyPointDTO, 0, months)
	for i := months - 1; i >= 0; i-- {
		anchor := firstOfCurrent.AddDate(0, 0, -i*monthStepDays)
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		count, err := uc.analyticsRepo.CountCreatedBetween(ctx, scope, start, end)
		if err != nil {
			return nil, fmt.Errorf("serie mensual: %w", err)
		}
		value, err := uc.analyticsRepo.SumActiveValueBetween(ctx, scope, start, end)
		if err != nil {
			return nil, fmt.Errorf("serie mensual: %w", err)
		}

		stats = append(stats, dto.MonthlyPointDTO{
			Month: start.Format("Jan 2006"),
			Sales: count,
			Value: value,
		})
	}
	return stats, nil
}

// LoyaltyAlerts devuelve las ventas active cuya fidelización termina dentro de
// los próximos 210 días, ordenadas por fecha de fin ascendente. DaysUntilEnd
// se recorta a 0 para contratos ya vencidos que sigan active.
func (uc *DashboardUseCase) LoyaltyAlerts(ctx context.Context, actor *entity.User) ([]dto.LoyaltyAlertDTO, error) {
	scope := domain.ScopeForUser(actor)
	now := time.Now().UTC()
	threshold := now.AddDate(0, 0, loyaltyAlertDays)

	sales, err := uc.analyticsRepo.ListLoyaltyExpiring(ctx, scope, threshold)
	if err != nil {
		return nil, fmt.Errorf("alertas de fidelización: %w", err)
	}

	alerts := make([]dto.LoyaltyAlertDTO, 0, len(sales))
	for _, s := range sales {
		days := 0
		if s.LoyaltyEndDate != nil {
			days = int(s.LoyaltyEndDate.Sub(now).Hours() / 24)
			if days < 0 {
				days = 0
			}
		}
		alerts = append(alerts, dto.LoyaltyAlertDTO{Sale: *s, DaysUntilEnd: days})
	}
	return alerts, nil
}
