// Package analytics contiene el resumen del dashboard de cartera.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/feraben-crm/internal/application/accounts"
	"github.com/jhoicas/feraben-crm/internal/application/dto"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
	"github.com/jhoicas/feraben-crm/internal/domain/repository"
)

// DashboardUseCase totales de cartera para el viewer: clientes, clientes con deuda, deuda
// total y movimientos del mes en curso.
type DashboardUseCase struct {
	clients   repository.ClientRepository
	movements repository.MovementRepository
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(clients repository.ClientRepository, movements repository.MovementRepository) *DashboardUseCase {
	return &DashboardUseCase{clients: clients, movements: movements, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardDTO.
//
// Dos lecturas en paralelo:
//  1. clientes visibles (todos para admin, la cartera propia para vendedor)
//  2. todos los movimientos (saldos por cliente y conteo del mes)
func (uc *DashboardUseCase) GetSummary(ctx context.Context, viewer entity.Viewer) (*dto.DashboardDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	type clientsResult struct {
		clients []*entity.Client
		err     error
	}
	type movementsResult struct {
		movs []*entity.Movement
		err  error
	}

	clientsCh := make(chan clientsResult, 1)
	movsCh := make(chan movementsResult, 1)

	go func() {
		cs, err := accounts.VisibleClients(ctx, uc.clients, viewer)
		clientsCh <- clientsResult{cs, err}
	}()
	go func() {
		ms, err := uc.movements.ListAll(ctx)
		movsCh <- movementsResult{ms, err}
	}()

	cr := <-clientsCh
	mr := <-movsCh

	if cr.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", cr.err)
	}
	if mr.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", mr.err)
	}

	visible := make(map[string]bool, len(cr.clients))
	for _, c := range cr.clients {
		visible[c.ID] = true
	}

	balances := ledger.BalancesByClient(mr.movs)
	out := &dto.DashboardDTO{
		TotalClients: len(cr.clients),
		TotalDebt:    decimal.Zero,
		MonthLabel:   monthLabel(now),
	}
	for id := range visible {
		if b := balances[id]; b.IsPositive() {
			out.ClientsWithDebt++
			out.TotalDebt = out.TotalDebt.Add(b)
		}
	}
	for _, m := range mr.movs {
		if m.Date.Before(monthStart) || !m.Date.Before(nextMonth) {
			continue
		}
		// El vendedor cuenta los movimientos que registró a su nombre.
		if viewer.IsAdmin() || m.SellerID == viewer.SellerID {
			out.MovementsThisMonth++
		}
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
