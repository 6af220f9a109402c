package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims son los claims que emite el backend SEVA en el access token.
// La consola nunca verifica la firma (no tiene el secreto); solo lee expiración y sujeto.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Generate firma un token HS256. Lo usan los backends simulados en pruebas.
func Generate(secret, subject, email string, roles []string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Roles: roles,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Inspect decodifica el token sin verificar la firma.
func Inspect(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("jwt: token vacío")
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: token ilegible: %w", err)
	}
	return claims, nil
}

// ExpiresWithin indica si el token expira antes de now+window.
// Un token sin claim exp se considera vigente.
func ExpiresWithin(tokenString string, window time.Duration, now time.Time) (bool, error) {
	claims, err := Inspect(tokenString)
	if err != nil {
		return false, err
	}
	if claims.ExpiresAt == nil {
		return false, nil
	}
	return !claims.ExpiresAt.Time.After(now.Add(window)), nil
}
