package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP statuses; everything that does not
// match one of them is treated as an internal fault.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicate          = errors.New("duplicate value")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrIntegrityViolation = errors.New("score does not match wave progression")
)

// Duplicate field collisions on registration.
var (
	ErrEmailTaken    = fmt.Errorf("%w: email already registered", ErrDuplicate)
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", ErrDuplicate)
)

// Token failures. They stay distinguishable internally even though the
// HTTP layer answers all of them with 401.
var (
	ErrTokenMissing          = fmt.Errorf("%w: missing token", ErrUnauthorized)
	ErrTokenMalformed        = fmt.Errorf("%w: malformed token", ErrUnauthorized)
	ErrTokenInvalidSignature = fmt.Errorf("%w: invalid token signature", ErrUnauthorized)
	ErrTokenExpired          = fmt.Errorf("%w: token expired", ErrUnauthorized)
)

// RangeError reports a session field outside its static bounds.
type RangeError struct {
	Field string
	Min   int
	Max   int
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

func (e *RangeError) Unwrap() error { return ErrValidation }

// IntegrityError reports a score that is implausible for the wave reached.
type IntegrityError struct {
	Score    int
	MinScore int
	MaxScore int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: score %d outside [%d, %d]", ErrIntegrityViolation, e.Score, e.MinScore, e.MaxScore)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrityViolation }
