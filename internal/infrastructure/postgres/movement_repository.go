package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, cliente_id, vendedor_id, fecha, tipo_movimiento, documento, importe, comentario, created_at, updated_at`

// El orden define el saldo acumulado de movimientos del mismo día.
const movementOrder = ` ORDER BY fecha ASC, created_at ASC, id ASC`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. El importe debe llegar normalizado.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ClientID, nullable(m.SellerID), m.Date, string(m.Type),
		m.Document, m.Amount, m.Comment, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente o vendedor inexistente", domain.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.StoreError("insert movimiento", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.StoreError("get movimiento", err)
	}
	return m, nil
}

// Update modifica fecha, tipo, documento, importe, comentario y vendedor. El cliente no cambia.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	query := `
		UPDATE movimientos
		SET vendedor_id = $2, fecha = $3, tipo_movimiento = $4, documento = $5,
		    importe = $6, comentario = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, nullable(m.SellerID), m.Date, string(m.Type), m.Document, m.Amount, m.Comment, m.UpdatedAt,
	)
	if err != nil {
		return domain.StoreError("update movimiento", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento por ID.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movimientos WHERE id = $1`, id)
	if err != nil {
		return domain.StoreError("delete movimiento", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByClient devuelve el historial completo del cliente en orden cronológico.
func (r *MovementRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos WHERE cliente_id = $1` + movementOrder
	return r.list(ctx, "list movimientos por cliente", query, clientID)
}

// ListAll devuelve los movimientos de todos los clientes en orden cronológico.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos` + movementOrder
	return r.list(ctx, "list movimientos", query)
}

func (r *MovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.StoreError(op, err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, domain.StoreError("scan movimiento", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError(op, err)
	}
	return list, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var sellerID, document, comment *string
	var typ string
	if err := row.Scan(
		&m.ID, &m.ClientID, &sellerID, &m.Date, &typ,
		&document, &m.Amount, &comment, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	m.SellerID = deref(sellerID)
	m.Document = deref(document)
	m.Comment = deref(comment)
	m.Type = entity.MovementType(typ)
	return &m, nil
}
