package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		existing      map[string]*models.User
		expectedError error
	}{
		{
			name:     "success",
			email:    "new@example.com",
			password: "longenough",
		},
		{
			name:          "missing email",
			email:         "",
			password:      "longenough",
			expectedError: models.ErrValidation,
		},
		{
			name:          "malformed email",
			email:         "not-an-email",
			password:      "longenough",
			expectedError: models.ErrValidation,
		},
		{
			name:          "short password",
			email:         "new@example.com",
			password:      "short",
			expectedError: models.ErrValidation,
		},
		{
			name:     "email already registered",
			email:    "taken@example.com",
			password: "longenough",
			existing: map[string]*models.User{
				"taken@example.com": {ID: 2, Email: "taken@example.com"},
			},
			expectedError: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{users: tt.existing}
			svc := NewAuthService(userRepo, &mockTokenIssuer{token: "signed-token"})

			user, token, err := svc.Register(context.Background(), &models.RegisterRequest{
				Email:    tt.email,
				Password: tt.password,
			})

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, userRepo.created)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "signed-token", token)
				assert.Equal(t, tt.email, user.Email)
				// Password is stored hashed, never verbatim
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := map[string]*models.User{
		"user@example.com": {ID: 7, Email: "user@example.com", PasswordHash: string(hash)},
	}

	tests := []struct {
		name          string
		email         string
		password      string
		expectedError error
	}{
		{
			name:     "success",
			email:    "user@example.com",
			password: "correct-password",
		},
		{
			name:          "wrong password",
			email:         "user@example.com",
			password:      "wrong-password",
			expectedError: models.ErrUnauthorized,
		},
		{
			name:          "unknown email",
			email:         "nobody@example.com",
			password:      "correct-password",
			expectedError: models.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(&mockUserRepository{users: users}, &mockTokenIssuer{token: "signed-token"})

			user, token, err := svc.Login(context.Background(), &models.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), user.ID)
				assert.Equal(t, "signed-token", token)
			}
		})
	}
}

func TestAuthService_GetProfile(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{
		byID: map[int64]*models.User{7: {ID: 7, Email: "user@example.com", Points: 15}},
	}, &mockTokenIssuer{})

	t.Run("success", func(t *testing.T) {
		user, err := svc.GetProfile(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 15, user.Points)
	})

	t.Run("user not found", func(t *testing.T) {
		_, err := svc.GetProfile(context.Background(), 99)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
