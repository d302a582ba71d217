// Package importing carga vendedores, clientes y movimientos desde planillas.
package importing

import (
	"context"

	"github.com/jhoicas/feraben-crm/internal/domain/repository"
)

// Repositories repositorios atados a una misma transacción.
type Repositories struct {
	Sellers   repository.SellerRepository
	Clients   repository.ClientRepository
	Movements repository.MovementRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}
