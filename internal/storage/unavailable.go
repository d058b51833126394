package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

// UnavailableStore stands in for a store that could not be opened. It lists
// no characters, every load reports the cause with an empty collection, and
// every save fails.
type UnavailableStore struct {
	cause error
}

// NewUnavailableStore wraps the error that kept the real store from opening.
func NewUnavailableStore(cause error) *UnavailableStore {
	if !errors.Is(cause, common.ErrStorageUnavailable) {
		cause = fmt.Errorf("%w: %w", common.ErrStorageUnavailable, cause)
	}
	return &UnavailableStore{cause: cause}
}

// Load returns an empty collection and the cause.
func (s *UnavailableStore) Load(_ context.Context, _ string) ([]*model.Vendor, error) {
	return []*model.Vendor{}, s.cause
}

// Save always fails.
func (s *UnavailableStore) Save(_ context.Context, _ string, _ []*model.Vendor) error {
	return s.cause
}

// Exists reports false.
func (s *UnavailableStore) Exists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

// ListCharacters reports none.
func (s *UnavailableStore) ListCharacters(_ context.Context) ([]string, error) {
	return []string{}, nil
}

// Close does nothing.
func (s *UnavailableStore) Close() error {
	return nil
}
