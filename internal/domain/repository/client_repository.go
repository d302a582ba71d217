package repository

import (
	"context"

	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context) ([]*entity.Client, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Client, error)
}
