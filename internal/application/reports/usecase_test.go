package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
	"github.com/leiritrix/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeReportRepo aplica el filtro del reporte en memoria, con el rango de
// fechas inclusivo en ambos extremos igual que el store real.
type fakeReportRepo struct {
	sales []*entity.Sale
}

func (r *fakeReportRepo) Create(_ context.Context, _ *entity.Sale) error { return nil }

func (r *fakeReportRepo) GetByID(_ context.Context, _ string) (*entity.Sale, error) {
	return nil, nil
}

func (r *fakeReportRepo) Update(_ context.Context, _ *entity.Sale) error { return nil }

func (r *fakeReportRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *fakeReportRepo) List(_ context.Context, _ repository.SaleFilter) ([]*entity.Sale, error) {
	return nil, nil
}

func (r *fakeReportRepo) ListForReport(_ context.Context, f repository.ReportFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if f.StartDate != nil && s.CreatedAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && s.CreatedAt.After(*f.EndDate) {
			continue
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.SellerID != "" && s.SellerID != f.SellerID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

var _ repository.SaleRepository = (*fakeReportRepo)(nil)

// fakePDFGen registra el reporte recibido y devuelve un PDF de mentira.
type fakePDFGen struct {
	lastReport *dto.ReportResponse
}

func (g *fakePDFGen) GenerateSalesReportPDF(_ context.Context, report *dto.ReportResponse) ([]byte, error) {
	g.lastReport = report
	return []byte("%PDF-fake"), nil
}

var _ PDFGenerator = (*fakePDFGen)(nil)

func f64Ptr(v float64) *float64 { return &v }

func mkSale(id, sellerID, status string, value float64, commission *float64, createdAt time.Time) *entity.Sale {
	return &entity.Sale{
		ID:            id,
		ClientName:    "Cliente " + id,
		Category:      entity.CategoryEnergy,
		Partner:       "EDP",
		ContractValue: value,
		Status:        status,
		SellerID:      sellerID,
		SellerName:    "Vendedor",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
		Commission:    commission,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// El resumen suma el valor de contrato de todas las ventas y la comisión de
// las que la tienen; las ventas sin comisión suman 0.
func TestSalesReport_Resumen(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeReportRepo{sales: []*entity.Sale{
		mkSale("s1", "u1", entity.StatusActive, 100.10, f64Ptr(10.05), now),
		mkSale("s2", "u1", entity.StatusActive, 200.20, nil, now),
		mkSale("s3", "u2", entity.StatusNegotiating, 300.30, f64Ptr(20.10), now),
	}}
	uc := NewReportUseCase(repo, &fakePDFGen{})

	report, err := uc.SalesReport(context.Background(), repository.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Summary.TotalCount)
	assert.Equal(t, 600.60, report.Summary.TotalValue)
	assert.Equal(t, 30.15, report.Summary.TotalCommission)
	assert.Len(t, report.Sales, 3)
}

// El rango de fechas sobre created_at es inclusivo en ambos extremos.
func TestSalesReport_RangoInclusivo(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	repo := &fakeReportRepo{sales: []*entity.Sale{
		mkSale("borde-inicio", "u1", entity.StatusActive, 100, nil, start),
		mkSale("borde-fin", "u1", entity.StatusActive, 100, nil, end),
		mkSale("anterior", "u1", entity.StatusActive, 100, nil, start.Add(-time.Second)),
		mkSale("posterior", "u1", entity.StatusActive, 100, nil, end.Add(time.Second)),
	}}
	uc := NewReportUseCase(repo, &fakePDFGen{})

	report, err := uc.SalesReport(context.Background(), repository.ReportFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	require.Equal(t, 2, report.Summary.TotalCount)
	ids := []string{report.Sales[0].ID, report.Sales[1].ID}
	assert.Contains(t, ids, "borde-inicio")
	assert.Contains(t, ids, "borde-fin")
}

func TestSalesReport_FiltroPorVendedorYEstado(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeReportRepo{sales: []*entity.Sale{
		mkSale("s1", "u1", entity.StatusActive, 100, nil, now),
		mkSale("s2", "u1", entity.StatusLost, 100, nil, now),
		mkSale("s3", "u2", entity.StatusActive, 100, nil, now),
	}}
	uc := NewReportUseCase(repo, &fakePDFGen{})

	report, err := uc.SalesReport(context.Background(), repository.ReportFilter{
		SellerID: "u1",
		Status:   entity.StatusActive,
	})
	require.NoError(t, err)

	require.Len(t, report.Sales, 1)
	assert.Equal(t, "s1", report.Sales[0].ID)
}

func TestSalesReport_FiltroInvalido(t *testing.T) {
	uc := NewReportUseCase(&fakeReportRepo{}, &fakePDFGen{})

	_, err := uc.SalesReport(context.Background(), repository.ReportFilter{Status: "cerrada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SalesReport(context.Background(), repository.ReportFilter{Category: "gas"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un reporte vacío devuelve totales en cero, no un error.
func TestSalesReport_Vacio(t *testing.T) {
	uc := NewReportUseCase(&fakeReportRepo{}, &fakePDFGen{})

	report, err := uc.SalesReport(context.Background(), repository.ReportFilter{})
	require.NoError(t, err)

	assert.Zero(t, report.Summary.TotalCount)
	assert.Zero(t, report.Summary.TotalValue)
	assert.Zero(t, report.Summary.TotalCommission)
}

// El PDF se genera a partir del mismo reporte filtrado.
func TestSalesReportPDF(t *testing.T) {
	now := time.Now().UTC()
	gen := &fakePDFGen{}
	repo := &fakeReportRepo{sales: []*entity.Sale{
		mkSale("s1", "u1", entity.StatusActive, 100, f64Ptr(10), now),
	}}
	uc := NewReportUseCase(repo, gen)

	pdf, err := uc.SalesReportPDF(context.Background(), repository.ReportFilter{})
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	require.NotNil(t, gen.lastReport)
	assert.Equal(t, 1, gen.lastReport.Summary.TotalCount)
}
