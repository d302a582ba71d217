package dto

import "github.com/shopspring/decimal"

// ClientResponse cliente con su saldo derivado de los movimientos.
type ClientResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"codigo,omitempty"`
	BusinessName string          `json:"razon_social"`
	TradeName    string          `json:"nombre_fantasia,omitempty"`
	TaxID        string          `json:"rut,omitempty"`
	Address      string          `json:"direccion,omitempty"`
	City         string          `json:"ciudad,omitempty"`
	Department   string          `json:"departamento,omitempty"`
	Email        string          `json:"email,omitempty"`
	SellerID     string          `json:"vendedor_id,omitempty"`
	SellerName   string          `json:"vendedor,omitempty"`
	Balance      decimal.Decimal `json:"saldo"` // > 0 el cliente debe
}
