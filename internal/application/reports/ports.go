package reports

import (
	"context"

	"github.com/leiritrix/crm-api/internal/application/dto"
)

// PDFGenerator renderiza el reporte de ventas como PDF (A4).
// Lo implementa infrastructure/pdf; la interfaz vive aquí para invertir la dependencia.
type PDFGenerator interface {
	GenerateSalesReportPDF(ctx context.Context, report *dto.ReportResponse) ([]byte, error)
}
