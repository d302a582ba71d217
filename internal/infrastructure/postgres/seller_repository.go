package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/repository"
)

var _ repository.SellerRepository = (*SellerRepo)(nil)

const sellerColumns = `id, codigo, nombre, email, password_hash, rol, estado, created_at, updated_at`

// SellerRepo implementación de SellerRepository (usable con pool o tx).
type SellerRepo struct {
	q Querier
}

// NewSellerRepository construye el adaptador.
func NewSellerRepository(q Querier) *SellerRepo {
	return &SellerRepo{q: q}
}

// Create persiste un vendedor. El email se guarda en minúsculas.
func (r *SellerRepo) Create(ctx context.Context, s *entity.Seller) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `INSERT INTO vendedores (` + sellerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, nullable(s.Code), s.Name, nullable(strings.ToLower(s.Email)), nullable(s.PasswordHash),
		s.Role, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.StoreError("insert vendedor", err)
	}
	return nil
}

// GetByID obtiene un vendedor por ID; (nil, nil) si no existe.
func (r *SellerRepo) GetByID(ctx context.Context, id string) (*entity.Seller, error) {
	return r.get(ctx, `SELECT `+sellerColumns+` FROM vendedores WHERE id = $1`, id)
}

// FindByEmail busca por email sin distinguir mayúsculas.
func (r *SellerRepo) FindByEmail(ctx context.Context, email string) (*entity.Seller, error) {
	return r.get(ctx, `SELECT `+sellerColumns+` FROM vendedores WHERE email = $1`, strings.ToLower(email))
}

// List lista los vendedores por nombre.
func (r *SellerRepo) List(ctx context.Context) ([]*entity.Seller, error) {
	rows, err := r.q.Query(ctx, `SELECT `+sellerColumns+` FROM vendedores ORDER BY nombre`)
	if err != nil {
		return nil, domain.StoreError("list vendedores", err)
	}
	defer rows.Close()
	var list []*entity.Seller
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, domain.StoreError("scan vendedor", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("list vendedores", err)
	}
	return list, nil
}

func (r *SellerRepo) get(ctx context.Context, query string, arg string) (*entity.Seller, error) {
	s, err := scanSeller(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.StoreError("get vendedor", err)
	}
	return s, nil
}

func scanSeller(row pgx.Row) (*entity.Seller, error) {
	var s entity.Seller
	var code, email, hash *string
	if err := row.Scan(&s.ID, &code, &s.Name, &email, &hash, &s.Role, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Code = deref(code)
	s.Email = deref(email)
	s.PasswordHash = deref(hash)
	return &s, nil
}
