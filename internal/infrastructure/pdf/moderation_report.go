// Package pdf exporta a PDF los listados de moderación de la consola.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título del reporte     │  fecha de generación      │
//	│  FILTROS: fecha / categoría / empresa / estado               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTADÍSTICAS: total | filtradas | pend. | aprob. | rech.    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Solicitud | Empresa | Correo | Estado | Fecha   │
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

	"github.com/seva-empresas/seva-admin/internal/application/ports"
	"github.com/seva-empresas/seva-admin/internal/domain/filter"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportRenderer usando Maroto v2.
type MarotoReportGenerator struct {
	author string
}

// NewMarotoReportGenerator construye el generador; author aparece en los metadatos del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

var _ ports.ReportRenderer = (*MarotoReportGenerator)(nil)

// RenderModerationReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) RenderModerationReport(ctx context.Context, report *ports.ModerationReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(nonEmpty(g.author, "SEVA Empresas"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(filtersRow(report.Filters))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(statisticsRow(report.Statistics))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay solicitudes que cumplan los filtros seleccionados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableDetailRows(report.Rows)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *ports.ModerationReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SEVA Empresas - Consola de administración", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func filtersRow(f filter.Config) core.Row {
	date := string(f.Date)
	if f.Date == filter.DateCustom && f.CustomDate != "" {
		date = f.CustomDate
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Filtros  Fecha: %s   |   Categoría: %s   |   Empresa: %s   |   Estado: %s",
			allLabel(date), allLabel(f.Category), allLabel(f.Company), allLabel(f.Status),
		), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func statisticsRow(s filter.Statistics) core.Row {
	cell := func(label string, n int) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(strconv.Itoa(n), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 5,
			}),
		)
	}
	return row.New(14).Add(
		col.New(1),
		cell("Total", s.Total),
		cell("Filtradas", s.Filtered),
		cell("Pendientes", s.Pending),
		cell("Aprobadas", s.Approved),
		cell("Rechazadas", s.Rejected),
		col.New(1),
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
		h("ID", 1, align.Center),
		h("Solicitud", 3, align.Left),
		h("Empresa", 2, align.Left),
		h("Correo", 3, align.Left),
		h("Estado", 1, align.Center),
		h("Fecha", 2, align.Right),
	)
}

func tableDetailRows(rows []ports.ReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(nonEmpty(s, "-"), props.Text{
				Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1,
			}))
		}
		result = append(result, row.New(7).Add(
			cell(r.ID, 1, align.Center),
			cell(r.Title, 3, align.Left),
			cell(r.Company, 2, align.Left),
			cell(r.Email, 3, align.Left),
			cell(r.Status, 1, align.Center),
			cell(r.Date, 2, align.Right),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Reporte generado a partir del listado filtrado de la consola. "+
			"Las estadísticas de estado se calculan sobre el total de solicitudes.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func allLabel(s string) string {
	if s == "" || s == filter.All {
		return "todas"
	}
	return s
}
