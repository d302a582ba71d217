package importing_test

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/feraben-crm/internal/application/importing"
	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

var errBoom = errors.New("conexión perdida")

// memStore almacén en memoria con rollback por snapshot.
type memStore struct {
	sellers   []*entity.Seller
	clients   []*entity.Client
	movements []*entity.Movement

	failClientCreate bool
}

func (s *memStore) Run(ctx context.Context, fn func(repos importing.Repositories) error) error {
	sellers, clients, movements := s.sellers, s.clients, s.movements
	err := fn(importing.Repositories{
		Sellers:   sellerRepo{s},
		Clients:   clientRepo{s},
		Movements: movementRepo{s},
	})
	if err != nil {
		s.sellers, s.clients, s.movements = sellers, clients, movements
	}
	return err
}

type sellerRepo struct{ s *memStore }

func (r sellerRepo) Create(_ context.Context, v *entity.Seller) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	r.s.sellers = append(append([]*entity.Seller(nil), r.s.sellers...), v)
	return nil
}

func (r sellerRepo) GetByID(_ context.Context, id string) (*entity.Seller, error) {
	for _, v := range r.s.sellers {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (r sellerRepo) FindByEmail(_ context.Context, email string) (*entity.Seller, error) {
	for _, v := range r.s.sellers {
		if strings.EqualFold(v.Email, email) {
			return v, nil
		}
	}
	return nil, nil
}

func (r sellerRepo) List(context.Context) ([]*entity.Seller, error) { return r.s.sellers, nil }

type clientRepo struct{ s *memStore }

func (r clientRepo) Create(_ context.Context, c *entity.Client) error {
	if r.s.failClientCreate {
		return domain.StoreError("insert cliente", errBoom)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.s.clients = append(append([]*entity.Client(nil), r.s.clients...), c)
	return nil
}

func (r clientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	for _, c := range r.s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r clientRepo) List(context.Context) ([]*entity.Client, error) { return r.s.clients, nil }

func (r clientRepo) ListBySeller(_ context.Context, sellerID string) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.s.clients {
		if c.SellerID == sellerID {
			out = append(out, c)
		}
	}
	return out, nil
}

type movementRepo struct{ s *memStore }

func (r movementRepo) Create(_ context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	r.s.movements = append(append([]*entity.Movement(nil), r.s.movements...), m)
	return nil
}

func (r movementRepo) GetByID(context.Context, string) (*entity.Movement, error) { return nil, nil }
func (r movementRepo) Update(context.Context, *entity.Movement) error { return nil }
func (r movementRepo) Delete(context.Context, string) error { return nil }

func (r movementRepo) ListByClient(_ context.Context, clientID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ClientID == clientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r movementRepo) ListAll(context.Context) ([]*entity.Movement, error) { return r.s.movements, nil }

// sheet arma filas numeradas como en una planilla (encabezado en la fila 1).
func sheet(headers []string, rows ...[]string) []importing.Row {
	out := make([]importing.Row, len(rows))
	for i, cells := range rows {
		out[i] = importing.NewRow(i+2, headers, cells)
	}
	return out
}
