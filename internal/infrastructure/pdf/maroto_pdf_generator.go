// Package pdf genera el relatorio de parcerias en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de emisión + filtros aplicados      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTADORES: Ativas | Inativas | Pendentes | Total          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: OSC | Loja | Início | Atualização | Status | Camp.  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 21, Green: 128, Blue: 61}
	colorRed     = &props.Color{Red: 185, Green: 28, Blue: 28}
	colorAmber   = &props.Color{Red: 180, Green: 83, Blue: 9}
)

var _ partnership.ReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa partnership.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReport(_ context.Context, r partnership.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Parcerias", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(statsRow(r.Stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(r.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhuma parceria encontrada.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableRows(r.Items)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r partnership.Report) core.Row {
	filters := "Busca: " + nonEmpty(r.SearchTerm, "-") + "   |   Status: " + statusFilterLabel(r.StatusFilter)
	return row.New(18).Add(
		col.New(8).Add(
			text.New("Parcerias", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(filters, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("RELATÓRIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido em "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func statsRow(s partnership.Stats) core.Row {
	cell := func(label string, value int, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
			text.New(strconv.Itoa(value), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Top: 6, Color: color,
			}),
		)
	}
	return row.New(16).Add(
		cell("Ativas", s.Ativas, colorGreen),
		cell("Inativas", s.Inativas, colorRed),
		cell("Pendentes", s.Pendentes, colorAmber),
		cell("Total", s.Total, colorPrimary),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("OSC", 3),
		h("Loja", 3),
		h("Início", 2),
		h("Atualização", 2),
		h("Status", 1),
		h("Camp.", 1),
	)
}

// tableRows: una fila por parceria de la vista.
func tableRows(items []entity.Partnership) []core.Row {
	result := make([]core.Row, 0, len(items))
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1}))
	}
	for _, p := range items {
		campaign := "-"
		if p.Campanhas != 0 {
			campaign = strconv.FormatInt(p.Campanhas, 10)
		}
		result = append(result, row.New(7).Add(
			cell(p.OSC, 3),
			cell(p.Loja, 3),
			cell(FormatDate(p.DataInicio), 2),
			cell(FormatDate(p.DataVencimento), 2),
			col.New(1).Add(text.New(statusLabel(p.Status), props.Text{
				Size: 8, Top: 1, Left: 1, Style: fontstyle.Bold, Color: statusColor(p.Status),
			})),
			cell(campaign, 1),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// FormatDate convierte una fecha ISO-8601 del backend a dd/mm/aaaa. Vacío devuelve "-";
// un texto que no se puede interpretar se devuelve tal cual.
func FormatDate(s string) string {
	if s == "" {
		return "-"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

func statusLabel(s entity.PartnershipStatus) string {
	switch s {
	case entity.StatusAtiva:
		return "Ativa"
	case entity.StatusInativa:
		return "Inativa"
	default:
		return "Pendente"
	}
}

func statusColor(s entity.PartnershipStatus) *props.Color {
	switch s {
	case entity.StatusAtiva:
		return colorGreen
	case entity.StatusInativa:
		return colorRed
	default:
		return colorAmber
	}
}

func statusFilterLabel(f string) string {
	if f == "" || f == partnership.StatusFilterAll {
		return "Todos"
	}
	return statusLabel(entity.PartnershipStatus(f))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
