package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials provided")
	ErrInvalidMagicLink   = errors.New("invalid or expired sign-in link")
	ErrNotFound           = errors.New("requested resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownConsentType = errors.New("unknown consent type")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrAlreadyExists      = errors.New("resource already exists")
)
