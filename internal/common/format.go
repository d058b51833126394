package common

import (
	"fmt"
	"strconv"
	"time"
)

// PendingLabel is shown in place of a countdown once a reset is due.
const PendingLabel = "RESET PENDING!"

// NoResetLabel is shown when there is nothing to count down to.
const NoResetLabel = "--"

// FormatCouncil renders a currency amount in the compact K/M notation used
// throughout the UI. Thousands are floored, millions get one decimal.
func FormatCouncil(value int) string {
	abs := value
	if abs < 0 {
		abs = -abs
	}

	switch {
	case value == 0:
		return "0"
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(value)/1_000_000)
	case abs >= 1_000:
		return strconv.Itoa(floorDiv(value, 1000)) + "K"
	default:
		return strconv.Itoa(value)
	}
}

// FormatCountdown renders time remaining as "N days, Hh, Mm", or the pending
// label once the duration is no longer positive.
func FormatCountdown(remaining time.Duration) string {
	if remaining <= 0 {
		return PendingLabel
	}

	totalSeconds := int64(remaining / time.Second)
	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60

	return fmt.Sprintf("%d days, %dh, %dm", days, hours, minutes)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
