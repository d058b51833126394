// Package themes holds the TUI color schemes.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/resetwatch/internal/cluster"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	ClusterBox  lipgloss.Style
	FormBox     lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	Exhausted   lipgloss.Style
	Pending     lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Earliest    lipgloss.Color
	Latest      lipgloss.Color
	Error       lipgloss.Color
	Success     lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	// Colors
	Primary:  lipgloss.Color("#3b82f6"),
	Muted:    lipgloss.Color("#737373"),
	Border:   lipgloss.Color("#404040"),
	Earliest: lipgloss.Color("#32CD32"),
	Latest:   lipgloss.Color("#8B0000"),
	Error:    lipgloss.Color("#ef4444"),
	Success:  lipgloss.Color("#10b981"),

	// Text styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#3b82f6")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),

	// Component styles
	ClusterBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
	FormBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3b82f6")).
		Padding(1, 2),

	// Status styles
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Exhausted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#808080")),
	Pending: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90")).
		Bold(true),
}

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = Theme{
	// Colors
	Primary:  lipgloss.Color("#cba6f7"),
	Muted:    lipgloss.Color("#6c7086"),
	Border:   lipgloss.Color("#45475a"),
	Earliest: lipgloss.Color("#a6e3a1"),
	Latest:   lipgloss.Color("#f38ba8"),
	Error:    lipgloss.Color("#f38ba8"),
	Success:  lipgloss.Color("#a6e3a1"),

	// Text styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#cdd6f4")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6adc8")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#cdd6f4")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#cdd6f4")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#cba6f7")).
		Foreground(lipgloss.Color("#1e1e2e")).
		Bold(true),

	// Component styles
	ClusterBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#45475a")).
		Padding(0, 1),
	FormBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#cba6f7")).
		Padding(1, 2),

	// Status styles
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f38ba8")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6e3a1")),
	Exhausted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6c7086")),
	Pending: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6e3a1")).
		Bold(true),
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// EdgeBorder returns the border color for a cluster edge.
func (t Theme) EdgeBorder(edge cluster.Edge) lipgloss.Color {
	switch edge {
	case cluster.EdgeEarliest:
		return t.Earliest
	case cluster.EdgeLatest:
		return t.Latest
	default:
		return t.Border
	}
}
