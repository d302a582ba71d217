package importing

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
)

// DateLayout formato de fecha de los archivos de registros.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2/1/06",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Encabezados aceptados para la hoja de movimientos.
var (
	headerFecha      = []string{"Fecha"}
	headerCliente    = []string{"Cliente", "Código Cliente", "Cod Cliente"}
	headerVendedor   = []string{"Vendedor"}
	headerTipo       = []string{"Tipo de Movimiento", "Tipo Movimiento", "Tipo"}
	headerDocumento  = []string{"Documento", "Nro Documento"}
	headerImporte    = []string{"Importe", "Monto"}
	headerComentario = []string{"Comentario", "Comentarios", "Observaciones"}
)

// MovementRecord movimiento leído de una planilla, antes de resolver cliente y vendedor.
type MovementRecord struct {
	Fecha          string          `json:"fecha"`
	Cliente        string          `json:"cliente"`
	Vendedor       string          `json:"vendedor"`
	TipoMovimiento string          `json:"tipo_movimiento"`
	Documento      string          `json:"documento"`
	Importe        decimal.Decimal `json:"importe"`
	Comentario     string          `json:"comentario"`
}

// ToRecord convierte una fila sin rechazarla: los campos faltantes quedan vacíos o en cero.
// Sin columna Fecha se usa la primera celda. Si el tipo se reconoce, el importe sale normalizado.
func ToRecord(row Row) MovementRecord {
	rec := MovementRecord{
		Fecha:          row.Get(headerFecha...),
		Cliente:        row.Get(headerCliente...),
		Vendedor:       row.Get(headerVendedor...),
		TipoMovimiento: row.Get(headerTipo...),
		Documento:      row.Get(headerDocumento...),
		Comentario:     row.Get(headerComentario...),
	}
	if rec.Fecha == "" {
		rec.Fecha = row.First()
	}
	if d, err := ParseDate(rec.Fecha); err == nil {
		rec.Fecha = d.Format(DateLayout)
	}
	raw := row.Get(headerImporte...)
	if t, ok := entity.ParseMovementType(rec.TipoMovimiento); ok {
		rec.TipoMovimiento = string(t)
		if amount, err := ledger.NormalizeString(t, raw); err == nil {
			rec.Importe = amount
		}
	} else if amount, err := ledger.ParseAmount(raw); err == nil {
		rec.Importe = amount
	}
	return rec
}

// RecordFromRow es la conversión estricta usada antes de insertar: además de ValidateRecord
// exige que el importe, si está presente, sea numérico.
func RecordFromRow(row Row) (MovementRecord, error) {
	if raw := row.Get(headerImporte...); raw != "" {
		if _, err := ledger.ParseAmount(raw); err != nil {
			return MovementRecord{}, err
		}
	}
	rec := ToRecord(row)
	if err := ValidateRecord(rec); err != nil {
		return MovementRecord{}, err
	}
	return rec, nil
}

// ValidateRecord verifica que el registro pueda convertirse en un movimiento.
func ValidateRecord(rec MovementRecord) error {
	if _, err := ParseDate(rec.Fecha); err != nil {
		return err
	}
	if strings.TrimSpace(rec.Cliente) == "" {
		return domain.NewValidationError("cliente", "requerido")
	}
	if _, ok := entity.ParseMovementType(rec.TipoMovimiento); !ok {
		return domain.NewValidationError("tipo_movimiento", "desconocido: "+rec.TipoMovimiento)
	}
	return nil
}

// ParseDate interpreta fechas de planilla: ISO, dd/mm/aaaa o número de serie de Excel.
// Devuelve la fecha a medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domain.NewValidationError("fecha", "requerida")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return civil(t), nil
		}
	}
	return time.Time{}, domain.NewValidationError("fecha", "formato no reconocido: "+s)
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
