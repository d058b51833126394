// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input validation errors.
	ErrEmptyName        = errors.New("vendor name cannot be empty")
	ErrInvalidCurrency  = errors.New("council must be numeric (K)")
	ErrInvalidTimeField = errors.New("days, hours and minutes must be integers")
	ErrExceedsCycle     = errors.New("reset time cannot exceed 6d 23h 59m without override")
	ErrInvalidCharacter = errors.New("character name must contain alphanumeric characters")
	ErrCharacterExists  = errors.New("character already exists")
	ErrVendorNotFound   = errors.New("vendor not found")

	// Persistence errors.
	ErrCorruptRecord      = errors.New("vendor record is corrupt")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsValidationError reports whether err stems from bad user input rather than
// a storage or configuration failure.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrEmptyName,
		ErrInvalidCurrency,
		ErrInvalidTimeField,
		ErrExceedsCycle,
		ErrInvalidCharacter,
		ErrCharacterExists,
		ErrVendorNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
