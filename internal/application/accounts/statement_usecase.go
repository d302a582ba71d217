package accounts

import (
	"context"
	"time"

	"github.com/jhoicas/feraben-crm/internal/application/dto"
	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
	"github.com/jhoicas/feraben-crm/internal/domain/repository"
)

// StatementUseCase arma estados de cuenta a partir del historial almacenado.
type StatementUseCase struct {
	clients   repository.ClientRepository
	movements repository.MovementRepository
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(clients repository.ClientRepository, movements repository.MovementRepository) *StatementUseCase {
	return &StatementUseCase{clients: clients, movements: movements}
}

// Build obtiene el cliente y su historial ordenado y aplica filtro y acumulado.
// Cliente inexistente: ErrNotFound. Falla del almacén: ErrStore, sin reintentos.
func (uc *StatementUseCase) Build(ctx context.Context, clientID string, policy ledger.Policy, rng ledger.DateRange) (*ledger.Statement, error) {
	return uc.build(ctx, clientID, policy, rng, nil)
}

// BuildFor igual que Build pero rechaza con ErrForbidden clientes fuera de la cartera del viewer.
func (uc *StatementUseCase) BuildFor(ctx context.Context, viewer entity.Viewer, clientID string, policy ledger.Policy, rng ledger.DateRange) (*ledger.Statement, error) {
	return uc.build(ctx, clientID, policy, rng, &viewer)
}

func (uc *StatementUseCase) build(ctx context.Context, clientID string, policy ledger.Policy, rng ledger.DateRange, viewer *entity.Viewer) (*ledger.Statement, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if viewer != nil && !viewer.CanSee(client) {
		return nil, domain.ErrForbidden
	}
	movs, err := uc.movements.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	ledger.SortChronologically(movs)
	return ledger.Assemble(client, movs, policy, rng)
}

// ParseStatementQuery traduce los parámetros de consulta a política y rango.
// El rango solo aplica con filtro "fechas"; desde posterior a hasta es un error de validación.
func ParseStatementQuery(q dto.StatementQuery) (ledger.Policy, ledger.DateRange, error) {
	if err := dto.Validate(q); err != nil {
		return "", ledger.DateRange{}, err
	}
	policy, err := ledger.ParsePolicy(q.Filter)
	if err != nil {
		return "", ledger.DateRange{}, err
	}
	var rng ledger.DateRange
	if policy != ledger.PolicyDateRange {
		return policy, rng, nil
	}
	if rng.From, err = parseQueryDate("desde", q.From); err != nil {
		return "", ledger.DateRange{}, err
	}
	if rng.To, err = parseQueryDate("hasta", q.To); err != nil {
		return "", ledger.DateRange{}, err
	}
	if err := rng.Validate(); err != nil {
		return "", ledger.DateRange{}, err
	}
	return policy, rng, nil
}

// parseQueryDate devuelve nil para un parámetro vacío.
func parseQueryDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, domain.NewValidationError(field, "formato aaaa-mm-dd")
	}
	return &t, nil
}
