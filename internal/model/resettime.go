package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/resetwatch/internal/common"
)

const (
	// ResetCycle is the fixed interval between vendor resets.
	ResetCycle = 7 * 24 * time.Hour

	// MaxTotalMinutes is the largest "time until reset" accepted without override (6d 23h 59m).
	MaxTotalMinutes = 6*24*60 + 23*60 + 59

	minutesPerDay  = 24 * 60
	minutesPerHour = 60
)

// Normalize clamps a days/hours/minutes triple describing time until reset.
//
// Without override the total is capped at MaxTotalMinutes and re-expressed in
// canonical form. With override days may exceed a cycle, while hours and
// minutes are capped independently without carrying into the next unit.
func Normalize(days, hours, minutes int, allowOverride bool) (int, int, int) {
	d := max(0, days)
	h := max(0, hours)
	m := max(0, minutes)

	if allowOverride {
		return d, min(h, 23), min(m, 59)
	}

	total := min(d*minutesPerDay+h*minutesPerHour+m, MaxTotalMinutes)
	d, rest := total/minutesPerDay, total%minutesPerDay
	return d, rest / minutesPerHour, rest % minutesPerHour
}

// NormalizeStrings is the permissive form of Normalize for raw input: empty
// fields count as zero and any unparseable field yields (0, 0, 0).
func NormalizeStrings(days, hours, minutes string, allowOverride bool) (int, int, int) {
	d, h, m, err := ParseTimeFields(days, hours, minutes)
	if err != nil {
		return 0, 0, 0
	}
	return Normalize(d, h, m, allowOverride)
}

// ParseTimeFields parses raw day/hour/minute input strictly. Empty fields are
// zero; anything that is not an integer is rejected.
func ParseTimeFields(days, hours, minutes string) (int, int, int, error) {
	values := [3]int{}
	for i, raw := range [3]string{days, hours, minutes} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", common.ErrInvalidTimeField, raw)
		}
		values[i] = n
	}
	return values[0], values[1], values[2], nil
}

// TotalMinutes returns the length of a days/hours/minutes triple in minutes.
func TotalMinutes(days, hours, minutes int) int {
	return days*minutesPerDay + hours*minutesPerHour + minutes
}

// ComputeLastReset places the last reset in time so that the given amount
// remains until the next one, relative to now.
func ComputeLastReset(now time.Time, days, hours, minutes int, allowOverride bool) time.Time {
	d, h, m := Normalize(days, hours, minutes, allowOverride)
	untilReset := time.Duration(TotalMinutes(d, h, m)) * time.Minute

	if !allowOverride {
		sinceLastReset := ResetCycle - untilReset
		return now.Add(-sinceLastReset)
	}

	// may land after now when the countdown is longer than a cycle
	return now.Add(untilReset).Add(-ResetCycle)
}

// SplitRemaining breaks a duration into whole days, hours and minutes.
// Negative durations split to zeros.
func SplitRemaining(remaining time.Duration) (int, int, int) {
	if remaining <= 0 {
		return 0, 0, 0
	}
	totalMinutes := int(remaining / time.Minute)
	days := totalMinutes / minutesPerDay
	rest := totalMinutes % minutesPerDay
	return days, rest / minutesPerHour, rest % minutesPerHour
}
