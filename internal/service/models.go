package service

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// UserCredentialClaims is the identity the platform's auth system mints
// into the session token. The judge only verifies and consumes it.
type UserCredentialClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"user_name"`
	jwt.RegisteredClaims
}
