package accounts_test

import (
	"context"
	"errors"

	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
)

var errDown = errors.New("timeout")

type fakeClients struct {
	byID map[string]*entity.Client
	err  error
}

func newFakeClients(cs ...*entity.Client) *fakeClients {
	f := &fakeClients{byID: map[string]*entity.Client{}}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeClients) Create(_ context.Context, c *entity.Client) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeClients) List(context.Context) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, id := range []string{"c-1", "c-2", "c-3"} {
		if c, ok := f.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, f.err
}

func (f *fakeClients) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Client, error) {
	all, err := f.List(ctx)
	var out []*entity.Client
	for _, c := range all {
		if c.SellerID == sellerID {
			out = append(out, c)
		}
	}
	return out, err
}

type fakeMovements struct {
	list    []*entity.Movement
	err     error
	updated *entity.Movement
}

func (f *fakeMovements) Create(_ context.Context, m *entity.Movement) error {
	if f.err != nil {
		return f.err
	}
	m.ID = "m-new"
	f.list = append(f.list, m)
	return nil
}

func (f *fakeMovements) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range f.list {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, f.err
}

func (f *fakeMovements) Update(_ context.Context, m *entity.Movement) error {
	f.updated = m
	return f.err
}

func (f *fakeMovements) Delete(_ context.Context, id string) error {
	for i, m := range f.list {
		if m.ID == id {
			f.list = append(f.list[:i], f.list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeMovements) ListByClient(_ context.Context, clientID string) ([]*entity.Movement, error) {
	if f.err != nil {
		return nil, domain.StoreError("list movimientos por cliente", f.err)
	}
	var out []*entity.Movement
	for _, m := range f.list {
		if m.ClientID == clientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovements) ListAll(context.Context) ([]*entity.Movement, error) {
	if f.err != nil {
		return nil, domain.StoreError("list movimientos", f.err)
	}
	return f.list, nil
}

type fakePDF struct{ got *ledger.Statement }

func (f *fakePDF) GenerateStatementPDF(_ context.Context, st *ledger.Statement) ([]byte, error) {
	f.got = st
	return []byte("%PDF-fake"), nil
}

type fakeSheet struct{ got *ledger.Statement }

func (f *fakeSheet) GenerateStatementXLSX(_ context.Context, st *ledger.Statement) ([]byte, error) {
	f.got = st
	return []byte("PK-fake"), nil
}
