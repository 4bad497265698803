// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid, malformed, or expired token).
	ErrInvalidToken = errors.New("invalid token")

	// One-time code lifecycle errors. Both wrap ErrorUnauthorized so callers
	// matching the broader class keep working.
	ErrOTPMismatch = fmt.Errorf("invalid one-time code: %w", ErrorUnauthorized)
	ErrOTPExpired  = fmt.Errorf("one-time code expired: %w", ErrorUnauthorized)
)
