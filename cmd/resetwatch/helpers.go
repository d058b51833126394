package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/config"
	"github.com/Veraticus/resetwatch/internal/model"
	"github.com/Veraticus/resetwatch/internal/service"
	"github.com/Veraticus/resetwatch/internal/storage"
	"github.com/Veraticus/resetwatch/internal/tracker"
)

// openStore opens the named backend and brings a SQLite schema up to date.
func openStore(ctx context.Context, cfg *config.TrackerConfig, backend string) (service.VendorStore, error) {
	opts := []storage.Option{storage.WithSeedPolicy(cfg.SeedPolicy)}

	switch backend {
	case config.BackendJSON:
		store, err := storage.NewFileStore(cfg.DataDir, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendSQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLitePath, opts...)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, backend)
	}
}

// initTracker loads configuration, opens the configured store and switches
// to the requested character. With strict set, a store or record that cannot
// be read is an error. Otherwise the failure is logged and the tracker
// continues with an empty collection, reported by Tracker.LoadErr.
func initTracker(ctx context.Context, strict bool) (*tracker.Tracker, func(), error) {
	cfg, err := config.LoadTrackerConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := openStore(ctx, cfg, cfg.Backend)
	if err != nil {
		if strict || errors.Is(err, common.ErrInvalidConfig) {
			return nil, nil, err
		}
		slog.Error("Storage unavailable, continuing without saved vendors", "backend", cfg.Backend, "error", err)
		store = storage.NewUnavailableStore(err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close store", "error", err)
		}
	}

	t := tracker.New(store,
		tracker.WithSeedPolicy(cfg.SeedPolicy),
		tracker.WithCategories(cfg.Categories),
	)

	character := cfg.Character
	if character != "" {
		if character, err = model.NormalizeCharacterName(character); err != nil {
			cleanup()
			return nil, nil, err
		}
	} else {
		characters, listErr := t.ListCharacters(ctx)
		if listErr != nil {
			slog.Warn("Failed to list characters", "error", listErr)
		}
		character = characters[0]
	}

	if err := t.LoadCharacter(ctx, character); err != nil && strict {
		cleanup()
		return nil, nil, err
	}

	return t, cleanup, nil
}

// printf writes to the command output and logs instead of failing when the
// terminal is gone.
func printf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}
