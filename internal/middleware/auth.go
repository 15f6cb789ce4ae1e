package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/types"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			Abort(c, apperr.Unauthenticated("authentication credentials were not provided"))
			return
		}
		if !authenticate(c, validator, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuth identifies the caller when a token is present. Requests
// without an Authorization header pass through anonymously; a bad token
// is still rejected.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if ok && !authenticate(c, validator, token) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, validator TokenValidator, token string) bool {
	claims, err := validator.ValidateToken(token)
	if err != nil {
		Abort(c, err)
		return false
	}
	c.Set(userIDKey, claims.UserID)
	c.Set(usernameKey, claims.Username)
	return true
}

// bearerToken accepts both "Bearer <jwt>" and "Token <jwt>" schemes.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// UserID returns the authenticated caller, if any
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// ViewerID returns the authenticated caller or uuid.Nil for anonymous requests
func ViewerID(c *gin.Context) uuid.UUID {
	id, _ := UserID(c)
	return id
}
