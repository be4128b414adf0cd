// Package reports contiene el caso de uso del reporte de ventas para
// admin/backoffice: listado filtrado con totales y exportación a PDF.
package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
	"github.com/leiritrix/crm-api/internal/domain/repository"
)

// ReportUseCase genera el reporte de ventas. No aplica scope por vendedor:
// el acceso ya está restringido a admin/backoffice en el router, y el filtro
// seller_id es opcional.
type ReportUseCase struct {
	saleRepo repository.SaleRepository
	pdfGen   PDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(saleRepo repository.SaleRepository, pdfGen PDFGenerator) *ReportUseCase {
	return &ReportUseCase{saleRepo: saleRepo, pdfGen: pdfGen}
}

// SalesReport devuelve las ventas que cumplen los filtros más el resumen.
// El rango de fechas sobre created_at es inclusivo en ambos extremos. Los
// totales se acumulan en decimal para evitar deriva de coma flotante y se
// redondean a 2 decimales; las ventas sin comisión suman 0.
func (uc *ReportUseCase) SalesReport(ctx context.Context, f repository.ReportFilter) (*dto.ReportResponse, error) {
	if f.Status != "" && !entity.ValidStatus(f.Status) {
		return nil, domain.ErrInvalidInput
	}
	if f.Category != "" && !entity.ValidCategory(f.Category) {
		return nil, domain.ErrInvalidInput
	}
	sales, err := uc.saleRepo.ListForReport(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	totalValue := decimal.Zero
	totalCommission := decimal.Zero
	for _, s := range sales {
		totalValue = totalValue.Add(decimal.NewFromFloat(s.ContractValue))
		if s.Commission != nil {
			totalCommission = totalCommission.Add(decimal.NewFromFloat(*s.Commission))
		}
	}

	return &dto.ReportResponse{
		Sales: sales,
		Summary: dto.ReportSummary{
			TotalCount:      len(sales),
			TotalValue:      totalValue.Round(2).InexactFloat64(),
			TotalCommission: totalCommission.Round(2).InexactFloat64(),
		},
	}, nil
}

// SalesReportPDF genera el mismo reporte y lo renderiza como PDF.
func (uc *ReportUseCase) SalesReportPDF(ctx context.Context, f repository.ReportFilter) ([]byte, error) {
	report, err := uc.SalesReport(ctx, f)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateSalesReportPDF(ctx, report)
}
