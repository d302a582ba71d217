package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrSecret se devuelve cuando no hay secreto configurado.
var ErrSecret = errors.New("jwt: secret vacío")

// Claims claims estándar más el vendedor y su rol; el middleware decide el alcance
// (cartera completa o propia) sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	SellerID string `json:"seller_id"`
	Role     string `json:"role"` // "admin" | "vendedor"
}

// Generate firma un token HS256 para el vendedor.
func Generate(secret, sellerID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrSecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sellerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		SellerID: sellerID,
		Role:     role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.SellerID == "" {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
