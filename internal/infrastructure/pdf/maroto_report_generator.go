// Package pdf implementa la exportación del reporte de ventas a PDF (A4)
// con Maroto v2: encabezado, resumen de totales y tabla de ventas.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/application/reports"
	"github.com/leiritrix/crm-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSalesReportPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReportPDF(_ context.Context, report *dto.ReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de Ventas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report.Summary))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, s := range report.Sales {
		m.AddRows(saleRow(s))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF del reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(summary dto.ReportSummary) core.Row {
	generated := time.Now().UTC().Format("2006-01-02 15:04 UTC")
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Reporte de Ventas", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
			text.New("Generado: "+generated, props.Text{
				Top: 7, Size: 7, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Ventas: %d", summary.TotalCount), props.Text{
				Size: 9, Align: align.Right,
			}),
			text.New("Valor total: "+money(summary.TotalValue), props.Text{
				Top: 4, Size: 9, Align: align.Right,
			}),
			text.New("Comisiones: "+money(summary.TotalCommission), props.Text{
				Top: 8, Size: 9, Align: align.Right,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	bold := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary}
	boldRight := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right}
	return row.New(6).Add(
		col.New(3).Add(text.New("Cliente", bold)),
		col.New(2).Add(text.New("Categoría", bold)),
		col.New(2).Add(text.New("Estado", bold)),
		col.New(2).Add(text.New("Vendedor", bold)),
		col.New(2).Add(text.New("Valor", boldRight)),
		col.New(1).Add(text.New("Comisión", boldRight)),
	)
}

func saleRow(s *entity.Sale) core.Row {
	plain := props.Text{Size: 7}
	right := props.Text{Size: 7, Align: align.Right}
	commission := "-"
	if s.Commission != nil {
		commission = money(*s.Commission)
	}
	return row.New(5).Add(
		col.New(3).Add(text.New(s.ClientName, plain)),
		col.New(2).Add(text.New(s.Category, plain)),
		col.New(2).Add(text.New(s.Status, plain)),
		col.New(2).Add(text.New(s.SellerName, plain)),
		col.New(2).Add(text.New(money(s.ContractValue), right)),
		col.New(1).Add(text.New(commission, right)),
	)
}

// money formatea un monto con dos decimales, vía decimal para evitar
// artefactos de coma flotante en la impresión.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + " €"
}
