package models

// Fixed point amounts for engagement events. The accrual operation itself
// only validates that an amount is positive; clients send these values for
// the corresponding events.
const (
	PointsEndOfContent = 10
	PointsAudioPlayed  = 5
	PointsVideoPlayed  = 5
	PointsQuizSubmit   = 5
	PointsReviewSubmit = 5
)

// User represents a registered user with their points balance
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Points       int    `json:"points"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddPointsRequest represents a points accrual request
type AddPointsRequest struct {
	Points int `json:"points"`
}
