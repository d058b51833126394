package tui

import (
	"time"

	"github.com/Veraticus/resetwatch/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Width        int
	Height       int
	TickInterval time.Duration
	ShowHelp     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Width:        80,
		Height:       24,
		TickInterval: time.Second,
		ShowHelp:     true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTickInterval sets how often countdowns refresh.
func WithTickInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval > 0 {
			c.TickInterval = interval
		}
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
