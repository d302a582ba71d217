package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

// StatementLine movimiento con el saldo acumulado hasta él (inclusive). No se persiste.
type StatementLine struct {
	Movement       *entity.Movement
	RunningBalance decimal.Decimal
}

// Accumulate recorre los movimientos en el orden recibido y anota el saldo acumulado.
// total > 0: el cliente debe; total < 0: saldo a favor del cliente; 0: cancelado.
func Accumulate(movs []*entity.Movement) (decimal.Decimal, []StatementLine) {
	total := decimal.Zero
	lines := make([]StatementLine, 0, len(movs))
	for _, m := range movs {
		total = total.Add(m.Amount)
		lines = append(lines, StatementLine{Movement: m, RunningBalance: total})
	}
	return total, lines
}

// Balance devuelve solo el saldo final (no depende del orden).
func Balance(movs []*entity.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movs {
		total = total.Add(m.Amount)
	}
	return total
}

// BalancesByClient agrupa una secuencia de varios clientes y devuelve el saldo de cada uno.
func BalancesByClient(movs []*entity.Movement) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, m := range movs {
		out[m.ClientID] = out[m.ClientID].Add(m.Amount)
	}
	return out
}

// Summary totales por tipo, como los muestra la cabecera del estado de cuenta.
type Summary struct {
	TotalSales    decimal.Decimal // suma de ventas
	TotalPayments decimal.Decimal // valor absoluto de la suma de pagos
	TotalReturns  decimal.Decimal // valor absoluto de la suma de devoluciones
	Count         int
}

// Summarize calcula los totales de las líneas recibidas.
func Summarize(lines []StatementLine) Summary {
	s := Summary{
		TotalSales:    decimal.Zero,
		TotalPayments: decimal.Zero,
		TotalReturns:  decimal.Zero,
		Count:         len(lines),
	}
	for _, l := range lines {
		switch l.Movement.Type {
		case entity.MovementTypeSale:
			s.TotalSales = s.TotalSales.Add(l.Movement.Amount)
		case entity.MovementTypePayment:
			s.TotalPayments = s.TotalPayments.Add(l.Movement.Amount)
		case entity.MovementTypeReturn:
			s.TotalReturns = s.TotalReturns.Add(l.Movement.Amount)
		}
	}
	s.TotalPayments = s.TotalPayments.Abs()
	s.TotalReturns = s.TotalReturns.Abs()
	return s
}
