package entity

import "time"

// Roles de usuario (los vendedores son también los usuarios de la aplicación).
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// Estados de la cuenta del vendedor.
const (
	SellerStatusActive   = "active"
	SellerStatusInactive = "inactive"
)

// Seller representa un vendedor. Un vendedor con rol admin ve toda la cartera.
type Seller struct {
	ID           string
	Code         string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Viewer identidad de quien consulta. Un admin ve toda la cartera; un vendedor solo sus clientes.
type Viewer struct {
	SellerID string
	Role     string
}

// IsAdmin indica si el viewer tiene rol admin.
func (v Viewer) IsAdmin() bool { return v.Role == RoleAdmin }

// CanSee indica si el cliente pertenece a la cartera visible.
func (v Viewer) CanSee(c *Client) bool {
	return v.IsAdmin() || (c != nil && c.SellerID != "" && c.SellerID == v.SellerID)
}
