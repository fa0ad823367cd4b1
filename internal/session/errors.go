package session

import "errors"

// Caller-visible failure kinds. The HTTP layer maps these to statuses and a
// generic message; anything else coming out of the manager is a storage or
// signing problem and surfaces as an internal error.
var (
	ErrMissingFields      = errors.New("email and password are required")
	ErrWeakPassword       = errors.New("password is too short")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
