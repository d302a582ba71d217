package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

// Policy criterio de selección de movimientos para el estado de cuenta.
type Policy string

// Políticas con los nombres que usa la interfaz de exportación.
const (
	PolicyFull          Policy = "completo"
	PolicySinceLastZero Policy = "ultimo_saldo_cero"
	PolicyDateRange     Policy = "fechas"
)

// ParsePolicy traduce el nombre recibido; vacío equivale a PolicyFull.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyFull:
		return PolicyFull, nil
	case PolicySinceLastZero:
		return PolicySinceLastZero, nil
	case PolicyDateRange:
		return PolicyDateRange, nil
	}
	return "", domain.NewValidationError("filtro", "filtro desconocido: "+s)
}

// DateRange límites opcionales (inclusive) sobre la fecha calendario del movimiento.
type DateRange struct {
	From *time.Time // desde
	To   *time.Time // hasta
}

// Contains indica si la fecha d cae dentro del rango; los límites nulos no restringen.
func (r DateRange) Contains(d time.Time) bool {
	day := civilDate(d)
	if r.From != nil && day.Before(civilDate(*r.From)) {
		return false
	}
	if r.To != nil && day.After(civilDate(*r.To)) {
		return false
	}
	return true
}

// Validate rechaza rangos invertidos.
func (r DateRange) Validate() error {
	if r.From != nil && r.To != nil && civilDate(*r.From).After(civilDate(*r.To)) {
		return domain.NewValidationError("desde", "posterior a hasta")
	}
	return nil
}

// Filter selecciona la porción de movimientos a presentar. Recibe la secuencia ya
// normalizada y ordenada por fecha; nunca modifica los importes.
func Filter(movs []*entity.Movement, policy Policy, rng DateRange) ([]*entity.Movement, error) {
	switch policy {
	case PolicyFull, "":
		return movs, nil
	case PolicySinceLastZero:
		return sinceLastZero(movs), nil
	case PolicyDateRange:
		if rng.From == nil && rng.To == nil {
			return movs, nil
		}
		out := make([]*entity.Movement, 0, len(movs))
		for _, m := range movs {
			if rng.Contains(m.Date) {
				out = append(out, m)
			}
		}
		return out, nil
	}
	return nil, domain.NewValidationError("filtro", "filtro desconocido: "+string(policy))
}

// sinceLastZero devuelve los movimientos posteriores al último punto con saldo exactamente 0.
// Si el saldo nunca vuelve a 0 se devuelve la secuencia completa.
func sinceLastZero(movs []*entity.Movement) []*entity.Movement {
	running := decimal.Zero
	last := -1
	for i, m := range movs {
		running = running.Add(m.Amount)
		if running.IsZero() {
			last = i
		}
	}
	if last < 0 {
		return movs
	}
	return movs[last+1:]
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
