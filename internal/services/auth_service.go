package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

// UserRepository defines methods for user data access
type UserRepository interface {
	// Create creates a new user
	//
	// "ctx" is the context for the request.
	// "user" is the user to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, user *models.User) error
	// GetByEmail retrieves a user by email
	//
	// "ctx" is the context for the request.
	// "email" is the email of the user.
	//
	// Returns the user and an error if any.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID retrieves a user by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the user.
	//
	// Returns the user and an error if any.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// ExistsByEmail checks if a user with the given email exists
	//
	// "ctx" is the context for the request.
	// "email" is the email of the user.
	//
	// Returns a boolean and an error if any.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TokenIssuer defines the token generation needed after registration and login
type TokenIssuer interface {
	// GenerateToken generates an access token for a user
	//
	// "userID" is the ID of the user.
	//
	// Returns the signed token and an error if any.
	GenerateToken(userID int64) (string, error)
}

type authService struct {
	userRepo UserRepository
	tokens   TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokens TokenIssuer) *authService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user with a hashed password and issues an access token
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("a valid email is required: %w", models.ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, "", fmt.Errorf("password must be at least 8 characters: %w", models.ErrValidation)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", fmt.Errorf("email '%s' is already registered: %w", email, models.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login verifies the credentials and issues an access token. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// GetProfile retrieves the profile of the authenticated user
func (s *authService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
