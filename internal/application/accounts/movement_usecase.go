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

// MovementUseCase alta, edición y baja de movimientos. Todo importe pasa por ledger.Normalize
// antes de llegar al almacén.
type MovementUseCase struct {
	clients   repository.ClientRepository
	movements repository.MovementRepository
	now       func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(clients repository.ClientRepository, movements repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{clients: clients, movements: movements, now: time.Now}
}

// Create valida, normaliza y persiste un movimiento. El cliente debe existir.
func (uc *MovementUseCase) Create(ctx context.Context, in dto.MovementRequest) (*dto.MovementResponse, error) {
	m, err := uc.fromRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	m.CreatedAt, m.UpdatedAt = now, now
	if err := uc.movements.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := toMovementResponse(m)
	return &resp, nil
}

// Update reemplaza fecha, tipo, documento, importe, comentario y vendedor. El cliente no puede cambiar.
func (uc *MovementUseCase) Update(ctx context.Context, id string, in dto.MovementRequest) (*dto.MovementResponse, error) {
	current, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if in.ClientID != "" && in.ClientID != current.ClientID {
		return nil, domain.NewValidationError("cliente_id", "no se puede cambiar el cliente de un movimiento")
	}
	in.ClientID = current.ClientID
	m, err := uc.fromRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	m.ID = current.ID
	m.CreatedAt = current.CreatedAt
	m.UpdatedAt = uc.now()
	if err := uc.movements.Update(ctx, m); err != nil {
		return nil, err
	}
	resp := toMovementResponse(m)
	return &resp, nil
}

// Delete elimina un movimiento.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	return uc.movements.Delete(ctx, id)
}

// Get devuelve un movimiento por ID.
func (uc *MovementUseCase) Get(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	resp := toMovementResponse(m)
	return &resp, nil
}

// ListByClient historial del cliente en orden cronológico, respetando la cartera del viewer.
func (uc *MovementUseCase) ListByClient(ctx context.Context, viewer entity.Viewer, clientID string) ([]dto.MovementResponse, error) {
	c, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if !viewer.CanSee(c) {
		return nil, domain.ErrForbidden
	}
	movs, err := uc.movements.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	ledger.SortChronologically(movs)
	return toMovementResponses(movs), nil
}

// ListAll todos los movimientos en orden cronológico.
func (uc *MovementUseCase) ListAll(ctx context.Context) ([]dto.MovementResponse, error) {
	movs, err := uc.movements.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ledger.SortChronologically(movs)
	return toMovementResponses(movs), nil
}

// fromRequest valida los campos requeridos antes de normalizar el importe.
func (uc *MovementUseCase) fromRequest(ctx context.Context, in dto.MovementRequest) (*entity.Movement, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, domain.NewValidationError("fecha", "formato aaaa-mm-dd")
	}
	t, ok := entity.ParseMovementType(in.Type)
	if !ok {
		return nil, domain.NewValidationError("tipo_movimiento", "debe ser Venta, Pago o Devolución")
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return nil, domain.NewValidationError("importe", "máximo 2 decimales")
	}
	amount, err := ledger.Normalize(t, *in.Amount)
	if err != nil {
		return nil, err
	}
	client, err := uc.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	sellerID := in.SellerID
	if sellerID == "" {
		sellerID = client.SellerID
	}
	return &entity.Movement{
		ClientID: client.ID,
		SellerID: sellerID,
		Date:     date,
		Type:     t,
		Document: in.Document,
		Amount:   amount,
		Comment:  in.Comment,
	}, nil
}
