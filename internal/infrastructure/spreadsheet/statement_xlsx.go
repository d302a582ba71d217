package spreadsheet

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/feraben-crm/internal/application/accounts"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
	"github.com/jhoicas/feraben-crm/pkg/money"
)

// StatementSheet nombre de la hoja generada.
const StatementSheet = "Estado de cuenta"

// TableHeaderRow fila del encabezado de la tabla de movimientos.
const TableHeaderRow = 6

var statementHeaders = []string{"Fecha", "Tipo", "Documento", "Importe", "Saldo", "Comentario"}

var _ accounts.StatementSheetGenerator = (*StatementGenerator)(nil)

// StatementGenerator implementa accounts.StatementSheetGenerator con excelize.
type StatementGenerator struct {
	companyName string
}

// NewStatementGenerator construye el generador.
func NewStatementGenerator(companyName string) *StatementGenerator {
	return &StatementGenerator{companyName: companyName}
}

// GenerateStatementXLSX escribe cabecera, movimientos con saldo acumulado y resumen.
func (g *StatementGenerator) GenerateStatementXLSX(_ context.Context, st *ledger.Statement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StatementSheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	w := &sheetWriter{f: f}
	w.set(1, 1, g.companyName, bold)
	w.set(2, 1, "Estado de cuenta", bold)
	w.set(3, 1, "Cliente")
	w.set(3, 2, st.Client.BusinessName)
	w.set(4, 1, "Código")
	w.set(4, 2, st.Client.Code)
	w.set(5, 1, "Movimientos")
	w.set(5, 2, st.PeriodLabel())

	for i, h := range statementHeaders {
		w.set(TableHeaderRow, i+1, h, bold)
	}
	r := TableHeaderRow + 1
	for _, l := range st.Lines {
		m := l.Movement
		w.set(r, 1, m.Date.Format(money.Date))
		w.set(r, 2, string(m.Type))
		w.set(r, 3, m.Document)
		w.set(r, 4, m.Amount.InexactFloat64(), amount)
		w.set(r, 5, l.RunningBalance.InexactFloat64(), amount)
		w.set(r, 6, m.Comment)
		r++
	}

	r++
	summary := []struct {
		label string
		value float64
	}{
		{"Total ventas", st.Summary.TotalSales.InexactFloat64()},
		{"Total pagos", st.Summary.TotalPayments.InexactFloat64()},
		{"Total devoluciones", st.Summary.TotalReturns.InexactFloat64()},
		{"Saldo", st.Total.InexactFloat64()},
		{"Saldo actual", st.ClientBalance.InexactFloat64()},
	}
	for _, s := range summary {
		w.set(r, 4, s.label, bold)
		w.set(r, 5, s.value, amount)
		r++
	}
	if w.err != nil {
		return nil, fmt.Errorf("xlsx: escribir celdas: %w", w.err)
	}
	_ = f.SetColWidth(StatementSheet, "A", "A", 14)
	_ = f.SetColWidth(StatementSheet, "C", "C", 16)
	_ = f.SetColWidth(StatementSheet, "D", "E", 16)
	_ = f.SetColWidth(StatementSheet, "F", "F", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: generar: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter conserva el primer error para no chequear cada celda.
type sheetWriter struct {
	f   *excelize.File
	err error
}

// set omite textos vacíos para no crear celdas sin contenido.
func (w *sheetWriter) set(row, col int, value any, style ...int) {
	if w.err != nil {
		return
	}
	if s, ok := value.(string); ok && s == "" {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(StatementSheet, cell, value); err != nil {
		w.err = err
		return
	}
	if len(style) > 0 {
		w.err = w.f.SetCellStyle(StatementSheet, cell, cell, style[0])
	}
}
