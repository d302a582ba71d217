package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/feraben-crm/internal/application/importing"
	"github.com/jhoicas/feraben-crm/internal/domain"
)

var _ importing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos importing.Repositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.StoreError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := importing.Repositories{
		Sellers:   NewSellerRepository(tx),
		Clients:   NewClientRepository(tx),
		Movements: NewMovementRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.StoreError("commit transaction", err)
	}
	return nil
}
