package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// TokenResponse is returned by the login endpoint
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}
