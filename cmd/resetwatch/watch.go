package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/config"
	"github.com/Veraticus/resetwatch/internal/tui"
	"github.com/Veraticus/resetwatch/internal/tui/themes"
)

const logFileName = "resetwatch.log"

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the live vendor board",
		Long: `Open a full-screen board that counts down every vendor's reset once a
second. Vendors can be added, updated, reset and deleted from the board.

Logs are written to resetwatch.log in the data directory while the board
owns the terminal.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadTrackerConfig()
	if err != nil {
		return err
	}
	closeLog, err := redirectLogs(cfg.DataDir)
	if err != nil {
		slog.Warn("Logging to stderr", "error", err)
		closeLog = func() {}
	}
	defer closeLog()

	t, cleanup, err := initTracker(ctx, false)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(ctx, t, tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))))
}

// redirectLogs points the global logger at a file under dataDir. On error the
// logger is left as it was.
func redirectLogs(dataDir string) (func(), error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dataDir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := common.SetupLoggerTo(f, level, viper.GetString("logging.format")); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() {
		_ = setupLogging()
		_ = f.Close()
	}, nil
}
