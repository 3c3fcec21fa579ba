package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_RoundTrip(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	token, err := tg.GenerateToken(7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tg.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestTokenGenerator_ValidateToken(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "expired token",
			token: func(t *testing.T) string {
				expired := NewTokenGenerator("test-secret", -time.Hour)
				token, err := expired.GenerateToken(7)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				other := NewTokenGenerator("other-secret", time.Hour)
				token, err := other.GenerateToken(7)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "garbage token",
			token: func(t *testing.T) string {
				return "not.a.token"
			},
		},
		{
			name: "wrong token type",
			token: func(t *testing.T) string {
				claims := jwt.MapClaims{
					"user_id": float64(7),
					"exp":     time.Now().Add(time.Hour).Unix(),
					"type":    "refresh",
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "missing user id",
			token: func(t *testing.T) string {
				claims := jwt.MapClaims{
					"exp":  time.Now().Add(time.Hour).Unix(),
					"type": "access",
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tg.ValidateToken(tt.token(t))
			assert.Error(t, err)
		})
	}
}
