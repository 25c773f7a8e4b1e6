// Package pdf genera el reporte de vencimientos de lotes en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Farmacia + título      │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Vencidos | Críticos | Advertencia | Vigentes       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Medicamento | Lote | Cant | Vence | Días | Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	appinv "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorOrange  = &props.Color{Red: 200, Green: 110, Blue: 0}
	colorGreen   = &props.Color{Red: 30, Green: 120, Blue: 60}
)

var _ appinv.ExpiryReportPDFGenerator = (*MarotoExpiryReportGenerator)(nil)

// MarotoExpiryReportGenerator implementa inventory.ExpiryReportPDFGenerator usando Maroto v2.
type MarotoExpiryReportGenerator struct {
	pharmacyName string
}

// NewMarotoExpiryReportGenerator construye el generador. pharmacyName aparece en el encabezado.
func NewMarotoExpiryReportGenerator(pharmacyName string) *MarotoExpiryReportGenerator {
	return &MarotoExpiryReportGenerator{pharmacyName: nonEmpty(pharmacyName, "Farmacia")}
}

// GenerateExpiryReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoExpiryReportGenerator) GenerateExpiryReportPDF(_ context.Context, report *dto.ExpiryReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de vencimientos", true).
		WithAuthor(g.pharmacyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(countsRow(report.Counts))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay lotes activos.", props.Text{Size: 9, Align: align.Center, Color: colorGray, Top: 3}),
		)))
	}
	m.AddRows(tableDetailRows(report.Items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Los lotes se listan en orden FEFO: primero el que vence antes.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoExpiryReportGenerator) headerRow(report *dto.ExpiryReportDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.pharmacyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de vencimientos de lotes", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
			text.New(strconv.Itoa(len(report.Items))+" lotes activos", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

// countsRow: un bloque por estado.
func countsRow(c dto.ExpiryCountsDTO) core.Row {
	block := func(label string, n int, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: color, Top: 1}),
			text.New(strconv.Itoa(n), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6}),
		)
	}
	return row.New(14).Add(
		block("VENCIDOS", c.Expired, colorRed),
		block("CRÍTICOS", c.Critical, colorOrange),
		block("ADVERTENCIA", c.Warning, colorPrimary),
		block("VIGENTES", c.Safe, colorGreen),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Medicamento", 4, align.Left),
		h("Lote", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Vence", 2, align.Center),
		h("Días", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

func tableDetailRows(items []dto.ExpiryItemDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(it.MedicineName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.BatchNumber, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.FormatInt(it.Quantity, 10), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(it.ExpiryDate.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(it.DaysLeft), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(statusLabel(it.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor(it.Status),
			})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(s string) string {
	switch inventory.ExpiryStatus(s) {
	case inventory.ExpiryExpired:
		return "Vencido"
	case inventory.ExpiryCritical:
		return "Crítico"
	case inventory.ExpiryWarning:
		return "Advertencia"
	case inventory.ExpirySafe:
		return "Vigente"
	}
	return s
}

func statusColor(s string) *props.Color {
	switch inventory.ExpiryStatus(s) {
	case inventory.ExpiryExpired:
		return colorRed
	case inventory.ExpiryCritical:
		return colorOrange
	case inventory.ExpiryWarning:
		return colorPrimary
	}
	return colorGreen
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
