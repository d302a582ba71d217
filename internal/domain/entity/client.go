package entity

import "time"

// Client representa un cliente de la cartera. No guarda saldo: el saldo siempre se deriva
// de sus movimientos.
type Client struct {
	ID           string
	Code         string // código externo usado en las planillas
	BusinessName string // razón social
	TradeName    string // nombre fantasía
	TaxID        string // RUT
	Address      string
	City         string
	Department   string
	Email        string
	SellerID     string
	SellerName   string // solo lectura (join con vendedores)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
