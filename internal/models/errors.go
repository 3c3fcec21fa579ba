package models

import "errors"

// Domain error kinds. Handlers map these to HTTP statuses with errors.Is, so
// a forbidden edit is never conflated with a missing lesson.
var (
	// ErrNotFound indicates the referenced lesson, review or user does not exist
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the caller is authenticated but not the owner/author
	ErrForbidden = errors.New("forbidden")
	// ErrValidation indicates malformed or missing input
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized indicates the supplied credentials are invalid
	ErrUnauthorized = errors.New("unauthorized")
)
