package repository

import (
	"context"

	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

// SellerRepository define el puerto de persistencia para vendedores (usuarios).
type SellerRepository interface {
	Create(ctx context.Context, seller *entity.Seller) error
	GetByID(ctx context.Context, id string) (*entity.Seller, error)
	FindByEmail(ctx context.Context, email string) (*entity.Seller, error)
	List(ctx context.Context) ([]*entity.Seller, error)
}
