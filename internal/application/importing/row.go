package importing

import (
	"strings"

	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

// Row fila de una planilla. Los encabezados se comparan sin distinguir mayúsculas ni tildes.
type Row struct {
	Number  int // número de fila en el archivo (el encabezado es la fila 1)
	headers []string
	cells   []string
}

// NewRow arma una fila a partir de los encabezados y sus celdas en el mismo orden.
func NewRow(number int, headers, cells []string) Row {
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = entity.FoldLabel(h)
	}
	return Row{Number: number, headers: keys, cells: cells}
}

// Get devuelve la primera celda no vacía entre los encabezados alternativos; "" si no hay.
func (r Row) Get(names ...string) string {
	for _, name := range names {
		key := entity.FoldLabel(name)
		for i, h := range r.headers {
			if h != key || i >= len(r.cells) {
				continue
			}
			if v := strings.TrimSpace(r.cells[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

// First devuelve la primera celda de la fila.
func (r Row) First() string {
	if len(r.cells) == 0 {
		return ""
	}
	return strings.TrimSpace(r.cells[0])
}

// Blank indica si todas las celdas están vacías (filas de relleno al final de la hoja).
func (r Row) Blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
