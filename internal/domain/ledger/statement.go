package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

// Statement estado de cuenta listo para presentar o exportar. Los generadores lo consumen
// en solo lectura: no deben alterar signos ni orden.
// Total es el saldo de la ventana; ClientBalance el saldo actual sobre todo el historial.
type Statement struct {
	Client        *entity.Client
	Policy        Policy
	Range         DateRange
	Lines         []StatementLine
	Total         decimal.Decimal
	ClientBalance decimal.Decimal
	Summary       Summary
}

// Assemble aplica el filtro y luego acumula: el saldo de la primera línea del estado parte
// de cero aunque el cliente tuviera saldo previo a la ventana elegida.
func Assemble(client *entity.Client, movs []*entity.Movement, policy Policy, rng DateRange) (*Statement, error) {
	window, err := Filter(movs, policy, rng)
	if err != nil {
		return nil, err
	}
	total, lines := Accumulate(window)
	return &Statement{
		Client:        client,
		Policy:        policy,
		Range:         rng,
		Lines:         lines,
		Total:         total,
		ClientBalance: Balance(movs),
		Summary:       Summarize(lines),
	}, nil
}

const labelDate = "02/01/2006"

// PeriodLabel describe la selección aplicada, ej: "desde 01/03/2024 hasta 31/03/2024".
func (s *Statement) PeriodLabel() string {
	switch s.Policy {
	case PolicySinceLastZero:
		return "desde el último saldo cero"
	case PolicyDateRange:
		switch {
		case s.Range.From != nil && s.Range.To != nil:
			return "desde " + s.Range.From.Format(labelDate) + " hasta " + s.Range.To.Format(labelDate)
		case s.Range.From != nil:
			return "desde " + s.Range.From.Format(labelDate)
		case s.Range.To != nil:
			return "hasta " + s.Range.To.Format(labelDate)
		}
	}
	return "historial completo"
}
