// Package storage provides the data persistence layer for vendor records.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidVendor = errors.New("invalid vendor")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// storageKey sanitizes a character id for use as a file name or row key.
func storageKey(characterID string) (string, error) {
	key := model.SanitizeCharacterID(characterID)
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidCharacter, characterID)
	}
	return key, nil
}

// validateVendors validates a collection before it is written.
func validateVendors(vendors []*model.Vendor) error {
	for i, v := range vendors {
		if err := validateVendor(v); err != nil {
			return fmt.Errorf("vendor at index %d: %w", i, err)
		}
	}
	return nil
}

// validateVendor validates a single vendor.
func validateVendor(vendor *model.Vendor) error {
	if vendor == nil {
		return fmt.Errorf("%w: vendor", ErrNilParameter)
	}
	if strings.TrimSpace(vendor.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidVendor)
	}
	if vendor.LastReset.IsZero() {
		return fmt.Errorf("%w: missing last reset for %s", ErrInvalidVendor, vendor.Name)
	}
	return nil
}
