package repository

import (
	"context"
	"time"

	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
)

// Límites de resultados. Son techos para acotar memoria, no paginación real.
const (
	ListLimit   = 1000  // GET /sales
	ReportLimit = 10000 // GET /reports/sales
	AlertLimit  = 100   // GET /alerts/loyalty
)

// SaleFilter filtros de listado de ventas. El Scope se aplica siempre antes
// que los filtros del cliente; Search es subcadena case-insensitive sobre
// client_name, client_nif o partner.
type SaleFilter struct {
	Scope    domain.Scope
	Status   string
	Category string
	SellerID string
	Search   string
}

// ReportFilter filtros del reporte de ventas. El rango de fechas sobre
// created_at es inclusivo en ambos extremos.
type ReportFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Status    string
	SellerID  string
}

// SaleRepository define el puerto de persistencia para Sale (DIP).
// GetByID devuelve (nil, nil) cuando la venta no existe.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// Update reemplaza el documento completo (last-write-wins; sin versionado).
	Update(ctx context.Context, sale *entity.Sale) error
	// Delete retorna domain.ErrSaleNotFound si el id no existe.
	Delete(ctx context.Context, id string) error
	// List ordena por created_at descendente, máximo ListLimit resultados.
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, error)
	// ListForReport ordena por created_at descendente, máximo ReportLimit resultados.
	ListForReport(ctx context.Context, f ReportFilter) ([]*entity.Sale, error)
}
