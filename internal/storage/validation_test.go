package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{name: "valid string", str: "test", paramName: "param"},
		{name: "empty string", str: "", paramName: "param", wantErr: true},
		{name: "whitespace only", str: "   \t", paramName: "param", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEmptyString) {
				t.Errorf("validateString() error = %v, want ErrEmptyString", err)
			}
		})
	}
}

func TestStorageKey(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    string
		wantErr bool
	}{
		{name: "plain", id: "Alice", want: "Alice"},
		{name: "strips punctuation", id: "Al!ce 2", want: "Alice 2"},
		{name: "keeps dash and underscore", id: "alt-main_1", want: "alt-main_1"},
		{name: "path traversal", id: "../../etc", want: "etc"},
		{name: "nothing left", id: "!!!", wantErr: true},
		{name: "empty", id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storageKey(tt.id)
			if tt.wantErr {
				if !errors.Is(err, common.ErrInvalidCharacter) {
					t.Errorf("storageKey(%q) error = %v, want ErrInvalidCharacter", tt.id, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("storageKey(%q) unexpected error: %v", tt.id, err)
			}
			if got != tt.want {
				t.Errorf("storageKey(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestValidateVendor(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		vendor  *model.Vendor
		wantErr error
		name    string
	}{
		{
			name:   "valid vendor",
			vendor: &model.Vendor{Name: "Armorer", LastReset: now},
		},
		{
			name:    "nil vendor",
			vendor:  nil,
			wantErr: ErrNilParameter,
		},
		{
			name:    "blank name",
			vendor:  &model.Vendor{Name: "  ", LastReset: now},
			wantErr: ErrInvalidVendor,
		},
		{
			name:    "zero last reset",
			vendor:  &model.Vendor{Name: "Armorer"},
			wantErr: ErrInvalidVendor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateVendor(tt.vendor)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateVendor() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateVendor() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateVendors_ReportsIndex(t *testing.T) {
	now := time.Now()
	err := validateVendors([]*model.Vendor{
		{Name: "A", LastReset: now},
		{Name: "", LastReset: now},
	})
	if !errors.Is(err, ErrInvalidVendor) {
		t.Fatalf("validateVendors() error = %v, want ErrInvalidVendor", err)
	}
	if got := err.Error(); got[:len("vendor at index 1")] != "vendor at index 1" {
		t.Errorf("validateVendors() error = %q, want index prefix", got)
	}
}
