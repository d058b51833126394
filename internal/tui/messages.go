package tui

import "time"

// tickMsg drives countdown refreshes.
type tickMsg time.Time
