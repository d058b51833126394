package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// SeedPolicy decides how a vendor's reset maximum is seeded at construction.
type SeedPolicy string

const (
	// SeedRaw keeps the supplied reset maximum as-is.
	SeedRaw SeedPolicy = "raw"
	// SeedMax raises the supplied reset maximum to the current council when larger.
	SeedMax SeedPolicy = "max"
)

// ParseSeedPolicy validates a configured seed policy name.
func ParseSeedPolicy(s string) (SeedPolicy, error) {
	switch SeedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case SeedRaw, "":
		return SeedRaw, nil
	case SeedMax:
		return SeedMax, nil
	default:
		return SeedRaw, fmt.Errorf("unknown seed policy %q (want %q or %q)", s, SeedRaw, SeedMax)
	}
}

// ErrInvalidLastReset reports a last-reset value that could not be interpreted.
var ErrInvalidLastReset = errors.New("invalid last_reset")

// Vendor is an in-game vendor whose council stock resets on a weekly cycle.
type Vendor struct {
	LastReset    time.Time
	Name         string
	Zone         string
	Categories   []string
	CouncilLeft  int
	ResetMaximum int
}

// NewVendor builds a vendor, de-duplicating categories and seeding the reset
// maximum according to policy.
func NewVendor(name, zone string, councilLeft int, lastReset time.Time, resetMaximum int, categories []string, policy SeedPolicy) *Vendor {
	if policy == SeedMax {
		resetMaximum = max(councilLeft, resetMaximum)
	}
	return &Vendor{
		Name:         name,
		Zone:         zone,
		CouncilLeft:  councilLeft,
		LastReset:    lastReset,
		ResetMaximum: resetMaximum,
		Categories:   DedupeCategories(categories),
	}
}

// NextReset is one full cycle after the last reset.
func (v *Vendor) NextReset() time.Time {
	return v.LastReset.Add(ResetCycle)
}

// ResetNow marks the vendor as reset at now, restoring council to the known
// maximum. A vendor without a known maximum keeps its current council.
func (v *Vendor) ResetNow(now time.Time) {
	v.LastReset = now
	if v.ResetMaximum > 0 {
		v.CouncilLeft = v.ResetMaximum
	}
}

// ApplyUpdate replaces council, reset anchor and categories. The reset maximum
// only ever grows.
func (v *Vendor) ApplyUpdate(councilLeft int, lastReset time.Time, categories []string) {
	v.CouncilLeft = councilLeft
	if councilLeft > v.ResetMaximum {
		v.ResetMaximum = councilLeft
	}
	v.LastReset = lastReset
	v.Categories = append([]string(nil), categories...)
}

// Clone returns a deep copy.
func (v *Vendor) Clone() *Vendor {
	c := *v
	c.Categories = append([]string(nil), v.Categories...)
	return &c
}

// DedupeCategories drops repeated entries, keeping first occurrences in order.
// Matching is exact and case-sensitive.
func DedupeCategories(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// isoLayouts are tried in order when reading a stored last_reset string.
// Records written by older tools carry no offset and are read as local time.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseLastReset interprets a stored last-reset value: a time.Time, an
// ISO-8601 string, or a numeric Unix epoch. When nothing works it returns now
// together with an error describing the fallback; callers log it and carry on.
func ParseLastReset(raw any, now time.Time) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return now, fmt.Errorf("%w: zero time", ErrInvalidLastReset)
		}
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range isoLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, nil
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			if t, ok := fromEpoch(f); ok {
				return t, nil
			}
		}
		return now, fmt.Errorf("%w: %q", ErrInvalidLastReset, v)
	case float64:
		if t, ok := fromEpoch(v); ok {
			return t, nil
		}
		return now, fmt.Errorf("%w: epoch %v out of range", ErrInvalidLastReset, v)
	case int64:
		return time.Unix(v, 0), nil
	case int:
		return time.Unix(int64(v), 0), nil
	case nil:
		return now, fmt.Errorf("%w: missing", ErrInvalidLastReset)
	default:
		return now, fmt.Errorf("%w: unsupported type %T", ErrInvalidLastReset, raw)
	}
}

func fromEpoch(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > 1e11 {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)), true
}
