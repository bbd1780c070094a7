package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/promiseroad/backend/libs/auth/identity"
)

// TokenGenerator handles JWT token generation and validation
type TokenGenerator struct {
	secret      string
	tokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, expiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:      secret,
		tokenExpiry: expiry,
	}
}

// GenerateToken creates a signed access token carrying the user id and role
func (tg *TokenGenerator) GenerateToken(userID int, role identity.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   userID,
		"role": string(role),
		"exp":  now.Add(tg.tokenExpiry).Unix(),
		"iat":  now.Unix(),
		"type": "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates an access token and returns the identity it carries
func (tg *TokenGenerator) ValidateToken(tokenString string) (identity.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		return identity.Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return identity.Identity{}, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity.Identity{}, fmt.Errorf("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return identity.Identity{}, fmt.Errorf("token is not an access token")
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["id"].(float64)
	if !ok {
		return identity.Identity{}, fmt.Errorf("id not found in token")
	}

	rawRole, ok := claims["role"].(string)
	if !ok {
		return identity.Identity{}, fmt.Errorf("role not found in token")
	}
	role, err := identity.ParseRole(rawRole)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("invalid role in token: %w", err)
	}

	return identity.Identity{UserID: int(userID), Role: role}, nil
}
