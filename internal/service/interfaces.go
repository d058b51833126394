// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/resetwatch/internal/model"
)

// VendorStore defines the contract for our persistence layer. Each character
// owns one record holding its whole vendor collection; records are always
// replaced wholesale.
type VendorStore interface {
	// Load returns the character's vendors in stored order. A character with
	// no record yields an empty collection and no error.
	Load(ctx context.Context, characterID string) ([]*model.Vendor, error)
	// Save replaces the character's record with vendors.
	Save(ctx context.Context, characterID string, vendors []*model.Vendor) error
	Exists(ctx context.Context, characterID string) (bool, error)
	ListCharacters(ctx context.Context) ([]string, error)
	Close() error
}

// Clock supplies the current time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }
