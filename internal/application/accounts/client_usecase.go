package accounts

import (
	"context"

	"github.com/jhoicas/feraben-crm/internal/application/dto"
	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
	"github.com/jhoicas/feraben-crm/internal/domain/repository"
)

// ClientUseCase consulta de clientes con saldo derivado.
type ClientUseCase struct {
	clients   repository.ClientRepository
	movements repository.MovementRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clients repository.ClientRepository, movements repository.MovementRepository) *ClientUseCase {
	return &ClientUseCase{clients: clients, movements: movements}
}

// List devuelve la cartera visible para el viewer con el saldo de cada cliente.
func (uc *ClientUseCase) List(ctx context.Context, viewer entity.Viewer) ([]dto.ClientResponse, error) {
	clients, err := VisibleClients(ctx, uc.clients, viewer)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movements.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	balances := ledger.BalancesByClient(movs)
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c, balances[c.ID]))
	}
	return out, nil
}

// Get devuelve un cliente con su saldo. ErrForbidden si no pertenece a la cartera del viewer.
func (uc *ClientUseCase) Get(ctx context.Context, viewer entity.Viewer, id string) (*dto.ClientResponse, error) {
	c, err := uc.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if !viewer.CanSee(c) {
		return nil, domain.ErrForbidden
	}
	movs, err := uc.movements.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toClientResponse(c, ledger.Balance(movs))
	return &resp, nil
}

// VisibleClients lista todos los clientes para un admin o solo los del vendedor.
func VisibleClients(ctx context.Context, repo repository.ClientRepository, viewer entity.Viewer) ([]*entity.Client, error) {
	if viewer.IsAdmin() {
		return repo.List(ctx)
	}
	return repo.ListBySeller(ctx, viewer.SellerID)
}
