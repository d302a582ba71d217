// Package pdf genera el estado de cuenta de un cliente en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + "ESTADO DE CUENTA"  │  Fecha de emisión   │
//	│  CLIENTE: Razón social / RUT / Código / Vendedor            │
//	│  FILTRO: completo | desde último saldo cero | rango         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Documento | Importe | Saldo           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ventas / Pagos / Devoluciones / SALDO              │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/jhoicas/feraben-crm/internal/application/accounts"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
	"github.com/jhoicas/feraben-crm/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDebt    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ accounts.StatementPDFGenerator = (*StatementGenerator)(nil)

// StatementGenerator implementa accounts.StatementPDFGenerator usando Maroto v2.
type StatementGenerator struct {
	companyName string
	now         func() time.Time
}

// NewStatementGenerator construye el generador; companyName encabeza el documento.
func NewStatementGenerator(companyName string) *StatementGenerator {
	return &StatementGenerator{companyName: companyName, now: time.Now}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes. No modifica el estado de cuenta.
func (g *StatementGenerator) GenerateStatementPDF(_ context.Context, st *ledger.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta - "+st.Client.BusinessName, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.companyName, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(st))
	m.AddRows(filterRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(st.Lines) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos para el filtro seleccionado.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(st.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(st))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar estado de cuenta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, issued time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitido: "+issued.Format(money.Date), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func clientRow(st *ledger.Statement) core.Row {
	c := st.Client
	return row.New(14).Add(
		col.New(12).Add(
			text.New(c.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			}),
			text.New(fmt.Sprintf("Código: %s   |   RUT: %s   |   Vendedor: %s",
				nonEmpty(c.Code, "-"),
				nonEmpty(c.TaxID, "-"),
				nonEmpty(c.SellerName, "-"),
			), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

func filterRow(st *ledger.Statement) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Movimientos: "+st.PeriodLabel(), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Documento", 3, align.Left),
		h("Importe", 2, align.Right),
		h("Saldo", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(lines []ledger.StatementLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		m := l.Movement
		balanceStyle := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if l.RunningBalance.IsPositive() {
			balanceStyle.Color = colorDebt
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(m.Date.Format(money.Date), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(m.Type), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(m.Document, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.Format(m.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money.Format(l.RunningBalance), balanceStyle)),
		))
	}
	return result
}

func summaryRow(st *ledger.Statement) core.Row {
	entries := []struct{ label, value string }{
		{"Total ventas:", money.Format(st.Summary.TotalSales)},
		{"Total pagos:", money.Format(st.Summary.TotalPayments)},
		{"Total devoluciones:", money.Format(st.Summary.TotalReturns)},
	}
	labels := col.New(4)
	values := col.New(3)
	for i, e := range entries {
		top := float64(i) * 5
		labels = labels.Add(text.New(e.label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		values = values.Add(text.New(e.value, props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
	}
	labels = labels.Add(text.New("SALDO:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 16,
	}))
	values = values.Add(text.New(money.Format(st.Total), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 16,
	}))
	labels = labels.Add(text.New("Saldo actual:", props.Text{
		Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 22,
	}))
	values = values.Add(text.New(money.Format(st.ClientBalance), props.Text{
		Size: 9, Align: align.Right, Right: 1, Top: 22,
	}))
	return row.New(30).Add(col.New(5), labels, values)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
