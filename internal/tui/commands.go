package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tick schedules the next countdown refresh.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
