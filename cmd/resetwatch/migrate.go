package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/resetwatch/internal/cli"
	"github.com/Veraticus/resetwatch/internal/config"
	"github.com/Veraticus/resetwatch/internal/service"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy every character between storage backends",
		Long: `Copy every character's vendors from one storage backend to the other,
for example from the JSON data directory into the SQLite database.

Characters that already exist in the destination are overwritten. Point
storage.backend at the destination afterwards to start using it.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	// Flags
	cmd.Flags().String("from", config.BackendJSON, "source backend (json, sqlite)")
	cmd.Flags().String("to", config.BackendSQLite, "destination backend (json, sqlite)")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if from == to {
		return fmt.Errorf("source and destination are both %q", from)
	}

	cfg, err := config.LoadTrackerConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	src, err := openStore(ctx, cfg, from)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", from, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := openStore(ctx, cfg, to)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", to, err)
	}
	defer func() { _ = dst.Close() }()

	slog.Info("Starting migration", "from", from, "to", to)

	copied, err := copyCharacters(ctx, src, dst, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess(fmt.Sprintf("Copied %d characters from %s to %s", copied, from, to)))
	return nil
}

// copyCharacters copies every character in src to dst and returns how many
// were copied. It stops at the first failure.
func copyCharacters(ctx context.Context, src, dst service.VendorStore, progress io.Writer) (int, error) {
	characters, err := src.ListCharacters(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list characters: %w", err)
	}
	if len(characters) == 0 {
		return 0, nil
	}

	bar := cli.NewProgressBar(len(characters), "Copying characters", progress)
	for i, character := range characters {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		vendors, err := src.Load(ctx, character)
		if err != nil {
			return i, fmt.Errorf("failed to load %s: %w", character, err)
		}
		if err := dst.Save(ctx, character, vendors); err != nil {
			return i, fmt.Errorf("failed to save %s: %w", character, err)
		}

		slog.Debug("Copied character", "character", character, "vendors", len(vendors))
		_ = bar.Add(1)
	}

	return len(characters), nil
}
