package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
)

// Claims carried in access tokens.
type Claims struct {
	UserID  string   `json:"uid"`
	Email   string   `json:"email"`
	Role    string   `json:"role"`
	Modules []string `json:"modules"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenManager creates a token manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "tillpoint",
	}
}

// Generate creates a signed token for the user.
func (m *TokenManager) Generate(userID id.ID, email, role string, modules []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID.String(),
		Email:   email,
		Role:    role,
		Modules: modules,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("sign token: %w", err))
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.NewUnauthorized("invalid token claims")
	}
	return claims, nil
}
