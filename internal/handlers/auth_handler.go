package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/ulitkinaslunkak/studybuddy-lang/internal/auth/middleware"
	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Register creates a new user with a hashed password and issues an access token
	//
	// "ctx" is the context for the request.
	// "req" is the registration request.
	//
	// Returns the created user, the signed token and an error if any.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error)
	// Login verifies the credentials and issues an access token
	//
	// "ctx" is the context for the request.
	// "req" is the login request.
	//
	// Returns the user, the signed token and an error if any.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error)
	// GetProfile retrieves the profile of the authenticated user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns the user and an error if any.
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
}

// AuthHandler handles HTTP requests for registration, login and profiles
type AuthHandler struct {
	BaseHandler
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.GetProfile)
	})
}

// Register handles POST /register
// @Summary Register a new user
// @Description Create a new user account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} map[string]any "Created user and access token"
// @Failure 400 {object} map[string]string "Bad request - invalid email, short password or email already registered"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /login
// @Summary Log in
// @Description Verify credentials and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]any "User and access token"
// @Failure 400 {object} map[string]string "Bad request - invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized - invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

// GetProfile handles GET /users/me
// @Summary Get own profile
// @Description Get the profile of the authenticated user, including the points balance
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.User "User profile"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required or invalid/expired token"
// @Failure 404 {object} map[string]string "Not found - user no longer exists"
// @Router /users/me [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}
