package dto

import "time"

// CreateSellerRequest alta de vendedor por un administrador (password en texto, se hashea en use case).
type CreateSellerRequest struct {
	Code     string `json:"codigo" validate:"omitempty,max=50"`
	Name     string `json:"nombre" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"rol" validate:"omitempty,oneof=admin vendedor"`
}

// SellerResponse salida de un vendedor (sin password).
type SellerResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"codigo,omitempty"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	Role      string    `json:"rol"`
	Status    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y datos del vendedor autenticado.
type LoginResponse struct {
	Token  string         `json:"token"`
	Seller SellerResponse `json:"vendedor"`
}
