package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and validates the bearer tokens that identify API users.
type JWTService interface {
	// GenerateToken creates a signed access token for userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks signature, type and time claims and returns the claims.
	// Errors are ErrExpiredToken, ErrTokenNotYetValid, ErrWrongTokenType or ErrInvalidToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType is always "access" for tokens accepted by ValidateToken.
	TokenType string `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
