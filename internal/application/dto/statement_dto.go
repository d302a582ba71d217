package dto

import "github.com/shopspring/decimal"

// StatementQuery parámetros de GET /api/clients/:id/statement (fechas aaaa-mm-dd).
type StatementQuery struct {
	Filter string `query:"filtro" validate:"omitempty,oneof=completo ultimo_saldo_cero fechas"`
	From   string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
	Format string `query:"formato" validate:"omitempty,oneof=pdf excel"`
}

// StatementLineDTO línea del estado de cuenta con saldo acumulado.
type StatementLineDTO struct {
	MovementResponse
	RunningBalance decimal.Decimal `json:"saldo_acumulado"`
}

// StatementSummaryDTO totales de la cabecera del estado de cuenta.
type StatementSummaryDTO struct {
	TotalSales    decimal.Decimal `json:"total_ventas"`
	TotalPayments decimal.Decimal `json:"total_pagos"`
	TotalReturns  decimal.Decimal `json:"total_devoluciones"`
	Count         int             `json:"cantidad_movimientos"`
}

// StatementResponse estado de cuenta de un cliente.
type StatementResponse struct {
	Client  ClientResponse      `json:"cliente"`
	Filter  string              `json:"filtro"`
	From    string              `json:"desde,omitempty"`
	To      string              `json:"hasta,omitempty"`
	Lines   []StatementLineDTO  `json:"movimientos"`
	Balance decimal.Decimal     `json:"saldo"`
	Summary StatementSummaryDTO `json:"resumen"`
}
