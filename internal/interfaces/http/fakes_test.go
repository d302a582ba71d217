package http_test

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
)

type memClients struct{ list []*entity.Client }

func (m *memClients) Create(_ context.Context, c *entity.Client) error {
	m.list = append(m.list, c)
	return nil
}

func (m *memClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	for _, c := range m.list {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memClients) List(context.Context) ([]*entity.Client, error) { return m.list, nil }

func (m *memClients) ListBySeller(_ context.Context, sellerID string) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range m.list {
		if c.SellerID == sellerID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memMovements struct {
	list []*entity.Movement
	down error
}

func (m *memMovements) Create(_ context.Context, mv *entity.Movement) error {
	if m.down != nil {
		return domain.StoreError("insert movimiento", m.down)
	}
	mv.ID = "m-new"
	m.list = append(m.list, mv)
	return nil
}

func (m *memMovements) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, mv := range m.list {
		if mv.ID == id {
			return mv, nil
		}
	}
	return nil, nil
}

func (m *memMovements) Update(_ context.Context, mv *entity.Movement) error {
	for i, cur := range m.list {
		if cur.ID == mv.ID {
			m.list[i] = mv
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memMovements) Delete(_ context.Context, id string) error {
	for i, mv := range m.list {
		if mv.ID == id {
			m.list = append(m.list[:i], m.list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memMovements) ListByClient(ctx context.Context, clientID string) ([]*entity.Movement, error) {
	all, err := m.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []*entity.Movement
	for _, mv := range all {
		if mv.ClientID == clientID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (m *memMovements) ListAll(context.Context) ([]*entity.Movement, error) {
	if m.down != nil {
		return nil, domain.StoreError("list movimientos", m.down)
	}
	out := append([]*entity.Movement(nil), m.list...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type memSellers struct{ list []*entity.Seller }

func (m *memSellers) Create(_ context.Context, s *entity.Seller) error {
	s.ID = "s-" + s.Email
	m.list = append(m.list, s)
	return nil
}

func (m *memSellers) GetByID(_ context.Context, id string) (*entity.Seller, error) {
	for _, s := range m.list {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memSellers) FindByEmail(_ context.Context, email string) (*entity.Seller, error) {
	for _, s := range m.list {
		if strings.EqualFold(s.Email, email) {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memSellers) List(context.Context) ([]*entity.Seller, error) { return m.list, nil }

type stubPDF struct{}

func (stubPDF) GenerateStatementPDF(context.Context, *ledger.Statement) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

type stubSheet struct{}

func (stubSheet) GenerateStatementXLSX(context.Context, *ledger.Statement) ([]byte, error) {
	return []byte("PK stub"), nil
}
