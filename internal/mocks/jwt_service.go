package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/service/auth"
)

// MockJWTService implements auth.JWTService. The Fn fields take precedence;
// otherwise the canned Token/Err and Claims/ValidateErr pairs are returned.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	Token string
	Err   error

	Claims      *auth.Claims
	ValidateErr error

	GenerateTokenCalls callLog
	ValidateTokenCalls callLog
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	m.GenerateTokenCalls.record(Call{UserID: userID})
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	m.ValidateTokenCalls.record(Call{Arg: tokenString})
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
