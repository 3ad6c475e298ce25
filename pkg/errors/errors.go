package chat_errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrRateLimited   = errors.New("rate limited")
	ErrNotConfigured = errors.New("database connection is not configured correctly")
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password so callers cannot tell the two apart.
var ErrInvalidCredentials = fmt.Errorf("incorrect username or password: %w", ErrUnauthorized)

// ErrEmailTaken is the conflict raised when registering an existing email.
var ErrEmailTaken = fmt.Errorf("email already registered: %w", ErrConflict)
