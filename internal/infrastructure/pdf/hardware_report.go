// Package pdf genera el listado de hardware en PDF (exportación desde la pantalla de hardware).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + alcance      │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total + conteo por estado + filtros aplicados     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Nombre | Marca/Modelo | Tipo | Empresa/Sede |       │
//	│         Stock | Precio | Estado                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
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

	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/internal/domain/hardware"
	"github.com/jhoicas/consola-hardware/pkg/format"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 185, Green: 28, Blue: 28}
)

// ReportInput datos del listado a exportar.
type ReportInput struct {
	Scope       string // "Todas las empresas" o el nombre de la empresa
	Criteria    hardware.Criteria
	Items       []entity.Hardware
	Counts      map[string]int
	GeneratedAt time.Time
}

// HardwareReport genera el PDF del listado de hardware con Maroto v2.
type HardwareReport struct{}

// NewHardwareReport construye el generador.
func NewHardwareReport() *HardwareReport { return &HardwareReport{} }

// Generate arma el documento y devuelve sus bytes.
func (g *HardwareReport) Generate(_ context.Context, in ReportInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Listado de hardware", true).
		WithAuthor("Consola de hardware", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(in.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay hardware que coincida con los filtros.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableRows(in.Items)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(in ReportInput) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("LISTADO DE HARDWARE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(in.Scope, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+format.Date(in.GeneratedAt, "02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(in ReportInput) core.Row {
	parts := make([]string, 0, len(hardware.Classes))
	for _, c := range hardware.Classes {
		parts = append(parts, fmt.Sprintf("%s: %d", hardware.ClassLabel(c), in.Counts[c]))
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total listado: %d   |   %s", len(in.Items), strings.Join(parts, "   |   ")), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
			text.New("Filtros: "+describeCriteria(in.Criteria), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
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
		h("Nombre", 3, align.Left),
		h("Marca / Modelo", 2, align.Left),
		h("Tipo", 1, align.Left),
		h("Empresa / Sede", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Precio", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

func tableRows(items []entity.Hardware) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, h := range items {
		class := hardware.Classify(h)
		stateProps := props.Text{Size: 7, Align: align.Center, Top: 1}
		if class == hardware.ClassInactive || h.PhysicalStatus == entity.PhysicalInactive {
			stateProps.Color = colorAlert
			stateProps.Style = fontstyle.Bold
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(h.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(joinNonEmpty(" / ", h.Brand, h.Model), props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(h.Type, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(joinNonEmpty(" / ", h.EmpresaName, h.Sede), props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", h.Stock), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(format.Currency(h.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(hardware.ClassLabel(class), stateProps)),
		))
	}
	return result
}

func describeCriteria(c hardware.Criteria) string {
	if c.IsZero() {
		return "ninguno"
	}
	var parts []string
	if s := strings.TrimSpace(c.Search); s != "" {
		parts = append(parts, fmt.Sprintf("búsqueda %q", s))
	}
	if c.Type != "" {
		parts = append(parts, "tipo "+c.Type)
	}
	if c.Status != "" {
		parts = append(parts, "estado "+hardware.ClassLabel(c.Status))
	}
	return strings.Join(parts, ", ")
}

func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return "—"
	}
	return strings.Join(out, sep)
}
