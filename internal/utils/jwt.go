package utils

import (
	"time"

	"imovia/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL is how long an admin bearer token stays valid.
const TokenTTL = 24 * time.Hour

type Claims struct {
	AdminID     string   `json:"id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a bearer token for an admin account.
func GenerateJWT(admin *models.Admin, secret string) (string, error) {
	claims := Claims{
		AdminID:     admin.ID,
		Email:       admin.Email,
		Role:        string(admin.Role),
		Permissions: admin.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT parses and validates a bearer token.
func ParseJWT(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}
