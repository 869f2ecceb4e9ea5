package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestJWTService(t *testing.T, secret string, at time.Time) *hmacJWTService {
	t.Helper()

	svc, err := newJWTService(secret, time.Hour, 30*time.Second, func() time.Time { return at })
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err, "zero lifetime is rejected")

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := newTestJWTService(t, testSecret, fixedTime)

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	signRaw := func(t *testing.T, claims jwtCustomClaims, method jwt.SigningMethod, key any) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (*hmacJWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				svc := newTestJWTService(t, testSecret, fixedTime)
				token, _ := svc.GenerateToken(context.Background(), userID)
				return svc, token
			},
		},
		{
			name: "within clock skew after expiry",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				token, _ := newTestJWTService(t, testSecret, fixedTime).GenerateToken(context.Background(), userID)
				return newTestJWTService(t, testSecret, fixedTime.Add(time.Hour+10*time.Second)), token
			},
		},
		{
			name: "expired token",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				token, _ := newTestJWTService(t, testSecret, fixedTime).GenerateToken(context.Background(), userID)
				return newTestJWTService(t, testSecret, fixedTime.Add(2*time.Hour)), token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "not yet valid",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				token, _ := newTestJWTService(t, testSecret, fixedTime).GenerateToken(context.Background(), userID)
				return newTestJWTService(t, testSecret, fixedTime.Add(-10*time.Minute)), token
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "invalid signature",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				token, _ := newTestJWTService(t, testSecret, fixedTime).GenerateToken(context.Background(), userID)
				return newTestJWTService(t, wrongSecret, fixedTime), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				return newTestJWTService(t, testSecret, fixedTime), "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty token",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				return newTestJWTService(t, testSecret, fixedTime), ""
			},
			wantErr: ErrMissingToken,
		},
		{
			name: "wrong token type",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				claims := jwtCustomClaims{
					UserID:    userID,
					TokenType: "refresh",
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}
				return newTestJWTService(t, testSecret, fixedTime),
					signRaw(t, claims, jwt.SigningMethodHS256, []byte(testSecret))
			},
			wantErr: ErrWrongTokenType,
		},
		{
			name: "missing expiry",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				claims := jwtCustomClaims{UserID: userID, TokenType: "access"}
				return newTestJWTService(t, testSecret, fixedTime),
					signRaw(t, claims, jwt.SigningMethodHS256, []byte(testSecret))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "other HMAC size rejected",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				claims := jwtCustomClaims{
					UserID:    userID,
					TokenType: "access",
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}
				return newTestJWTService(t, testSecret, fixedTime),
					signRaw(t, claims, jwt.SigningMethodHS512, []byte(testSecret))
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, token := tt.setupFunc(t)
			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}
