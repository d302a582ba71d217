package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/feraben-crm/internal/application/dto"
	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/repository"
	"github.com/jhoicas/feraben-crm/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de vendedores y alta de vendedores por un admin.
type AuthUseCase struct {
	sellers repository.SellerRepository
	jwtCfg  JWTConfig
	now     func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(sellers repository.SellerRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{sellers: sellers, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterSeller crea un vendedor con password hasheada. ErrDuplicate si el email ya existe.
func (uc *AuthUseCase) RegisterSeller(ctx context.Context, in dto.CreateSellerRequest) (*dto.SellerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.sellers.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	now := uc.now()
	seller := &entity.Seller{
		Code:         in.Code,
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		Role:         role,
		Status:       entity.SellerStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.sellers.Create(ctx, seller); err != nil {
		return nil, err
	}
	resp := toSellerResponse(seller)
	return &resp, nil
}

// Login verifica email/password y emite el JWT.
// Vendedores importados sin password no pueden iniciar sesión hasta que un admin la defina.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	seller, err := uc.sellers.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if seller == nil || seller.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if seller.Status != entity.SellerStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, seller.ID, seller.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:  token,
		Seller: toSellerResponse(seller),
	}, nil
}

// ListSellers lista los vendedores registrados.
func (uc *AuthUseCase) ListSellers(ctx context.Context) ([]dto.SellerResponse, error) {
	sellers, err := uc.sellers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SellerResponse, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, toSellerResponse(s))
	}
	return out, nil
}

func toSellerResponse(s *entity.Seller) dto.SellerResponse {
	return dto.SellerResponse{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		Email:     s.Email,
		Role:      s.Role,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
