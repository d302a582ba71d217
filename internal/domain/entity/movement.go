package entity

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MovementType tipo de movimiento de cuenta corriente (enumeración cerrada).
type MovementType string

// Tipos de movimiento tal como se guardan en la tabla movimientos.
const (
	MovementTypeSale    MovementType = "Venta"      // aumenta la deuda del cliente
	MovementTypePayment MovementType = "Pago"       // disminuye la deuda
	MovementTypeReturn  MovementType = "Devolución" // disminuye la deuda
)

// MovementTypes lista los tipos válidos en orden de presentación.
var MovementTypes = []MovementType{MovementTypeSale, MovementTypePayment, MovementTypeReturn}

// Valid indica si t pertenece a la enumeración.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeSale, MovementTypePayment, MovementTypeReturn:
		return true
	}
	return false
}

// Credit indica si el tipo disminuye la deuda (importe almacenado siempre <= 0).
func (t MovementType) Credit() bool {
	return t == MovementTypePayment || t == MovementTypeReturn
}

// ParseMovementType reconoce el tipo sin distinguir mayúsculas ni tildes ("DEVOLUCION", "pago").
func ParseMovementType(s string) (MovementType, bool) {
	key := FoldLabel(s)
	for _, t := range MovementTypes {
		if FoldLabel(string(t)) == key {
			return t, true
		}
	}
	return "", false
}

// FoldLabel normaliza un rótulo para comparar: sin tildes, sin espacios extremos, en minúsculas.
func FoldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToLower(out)
}

// Movement representa un movimiento de la cuenta corriente de un cliente.
// Amount ya está normalizado: positivo aumenta la deuda, Pago/Devolución siempre <= 0.
type Movement struct {
	ID        string
	ClientID  string
	SellerID  string // opcional
	Date      time.Time
	Type      MovementType
	Document  string // nro. de factura o recibo (opcional)
	Amount    decimal.Decimal
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
