package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/tracker"
)

// Run shows the vendor board for the tracker's active character until the
// user quits or ctx is cancelled. The collection is flushed on the way out
// however the program ends.
func Run(ctx context.Context, t *tracker.Tracker, opts ...Option) error {
	if t == nil {
		return errors.New("tracker is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := tea.NewProgram(
		newModel(ctx, t, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, runErr := p.Run()
	flushErr := t.Flush(context.WithoutCancel(ctx))

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	if flushErr != nil {
		return fmt.Errorf("failed to save on exit: %w", flushErr)
	}
	common.LogDebug("TUI closed", common.Fields{"character": t.Character()})
	return nil
}
