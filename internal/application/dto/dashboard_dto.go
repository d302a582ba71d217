package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/dashboard. Para un vendedor los totales cubren solo su cartera.
type DashboardDTO struct {
	TotalClients       int             `json:"total_clientes"`
	ClientsWithDebt    int             `json:"clientes_con_deuda"`
	TotalDebt          decimal.Decimal `json:"total_deuda"` // suma de saldos positivos
	MovementsThisMonth int             `json:"movimientos_este_mes"`
	MonthLabel         string          `json:"mes"` // ej: "Octubre 2026"
}
