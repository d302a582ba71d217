package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementRequest body de POST/PUT /api/movements. El importe se recibe como lo escribe el
// usuario; el signo lo fija el tipo de movimiento.
type MovementRequest struct {
	ClientID string           `json:"cliente_id" validate:"required"`
	SellerID string           `json:"vendedor_id" validate:"omitempty"`
	Date     string           `json:"fecha" validate:"required,datetime=2006-01-02"`
	Type     string           `json:"tipo_movimiento" validate:"required"`
	Document string           `json:"documento" validate:"max=100"`
	Amount   *decimal.Decimal `json:"importe" validate:"required"`
	Comment  string           `json:"comentario" validate:"max=500"`
}

// MovementResponse movimiento tal como está almacenado (importe normalizado).
type MovementResponse struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"cliente_id"`
	SellerID  string          `json:"vendedor_id,omitempty"`
	Date      string          `json:"fecha"`
	Type      string          `json:"tipo_movimiento"`
	Document  string          `json:"documento,omitempty"`
	Amount    decimal.Decimal `json:"importe"`
	Comment   string          `json:"comentario,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
