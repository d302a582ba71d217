// Package ledger contiene las reglas de la cuenta corriente de clientes: normalización del
// signo de los importes, saldo acumulado y selección de movimientos para el estado de cuenta.
// Todas las funciones son puras y operan sobre la secuencia que reciben.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

// Normalize aplica la convención de signo: Pago y Devolución se guardan como -|importe|,
// Venta se guarda tal cual (incluso si viene negativa).
func Normalize(t entity.MovementType, raw decimal.Decimal) (decimal.Decimal, error) {
	if !t.Valid() {
		return decimal.Zero, domain.NewValidationError("tipo_movimiento", "tipo desconocido: "+string(t))
	}
	if t.Credit() {
		return raw.Abs().Neg(), nil
	}
	return raw, nil
}

// ParseAmount interpreta un importe escrito por un usuario o leído de una planilla.
// Acepta espacios y símbolo "$"/"$U". Si hay coma, la coma es el separador decimal y los
// puntos son de miles ("1.234,50" = 1234.50). Sin coma, el punto es siempre decimal:
// "1.500" vale 1.5, igual que en las planillas exportadas con punto decimal.
// Texto no numérico es un error de validación.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$U", "", "UYU", "", "$", "", " ", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, domain.NewValidationError("importe", "vacío")
	}
	if strings.Contains(clean, ",") {
		if strings.Contains(clean, ".") {
			// 1.234,50 -> 1234.50
			clean = strings.ReplaceAll(clean, ".", "")
		}
		clean = strings.ReplaceAll(clean, ",", ".")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, domain.NewValidationError("importe", "no numérico: "+s)
	}
	return d, nil
}

// NormalizeString combina ParseAmount y Normalize; no produce resultado parcial si falla.
func NormalizeString(t entity.MovementType, raw string) (decimal.Decimal, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return Normalize(t, amount)
}
