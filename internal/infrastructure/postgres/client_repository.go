package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientSelect = `
	SELECT c.id, c.codigo, c.razon_social, c.nombre_fantasia, c.rut, c.direccion, c.ciudad,
	       c.departamento, c.email, c.vendedor_id, v.nombre, c.created_at, c.updated_at
	FROM clientes c
	LEFT JOIN vendedores v ON v.id = c.vendedor_id`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO clientes (id, codigo, razon_social, nombre_fantasia, rut, direccion, ciudad,
		                      departamento, email, vendedor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, nullable(c.Code), c.BusinessName, c.TradeName, c.TaxID, c.Address, c.City,
		c.Department, c.Email, nullable(c.SellerID), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.StoreError("insert cliente", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID; (nil, nil) si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, clientSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.StoreError("get cliente", err)
	}
	return c, nil
}

// List lista todos los clientes por razón social.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	return r.list(ctx, clientSelect+` ORDER BY c.razon_social`)
}

// ListBySeller lista la cartera de un vendedor.
func (r *ClientRepo) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Client, error) {
	return r.list(ctx, clientSelect+` WHERE c.vendedor_id = $1 ORDER BY c.razon_social`, sellerID)
}

func (r *ClientRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.StoreError("list clientes", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, domain.StoreError("scan cliente", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("list clientes", err)
	}
	return list, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var code, tradeName, taxID, address, city, department, email, sellerID, sellerName *string
	if err := row.Scan(
		&c.ID, &code, &c.BusinessName, &tradeName, &taxID, &address, &city,
		&department, &email, &sellerID, &sellerName, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.Code = deref(code)
	c.TradeName = deref(tradeName)
	c.TaxID = deref(taxID)
	c.Address = deref(address)
	c.City = deref(city)
	c.Department = deref(department)
	c.Email = deref(email)
	c.SellerID = deref(sellerID)
	c.SellerName = deref(sellerName)
	return &c, nil
}
