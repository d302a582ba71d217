// Package money formatea importes para estados de cuenta y planillas.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// Format devuelve el importe con separador de miles "." y dos decimales con ",".
// Ej: 1234567.5 -> "$ 1.234.567,50".
func Format(d decimal.Decimal) string {
	return "$ " + printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Date formato de fecha usado en los documentos exportados.
const Date = "02/01/2006"
