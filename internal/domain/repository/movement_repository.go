package repository

import (
	"context"

	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de cuenta corriente.
// Los listados se devuelven en orden cronológico ascendente (fecha, creación, id).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id string) error
	ListByClient(ctx context.Context, clientID string) ([]*entity.Movement, error)
	ListAll(ctx context.Context) ([]*entity.Movement, error)
}
