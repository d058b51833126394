package tracker

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

// DefaultCategories is the palette offered when none is configured.
var DefaultCategories = []string{"Jewelry", "Armor", "Weapons", "Scrolls", "Misc"}

// councilUnit is the multiplier for currency entered "in K".
const councilUnit = 1000

// VendorInput is the raw form data for a new vendor.
type VendorInput struct {
	Name       string
	Zone       string
	Council    string
	Days       string
	Hours      string
	Minutes    string
	Custom     string
	Categories []string
	Override   bool
}

// UpdateInput is the raw form data for an existing vendor.
type UpdateInput struct {
	Council    string
	Days       string
	Hours      string
	Minutes    string
	Custom     string
	Categories []string
	Override   bool
}

// ParseCouncil reads currency entered in thousands. "1.5" is 1500; fractions
// of a unit are truncated and a blank field is zero.
func ParseCouncil(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidCurrency, raw)
	}
	return int(math.Round(f * councilUnit)), nil
}

// ParseRemaining reads a time-until-reset triple and turns it into a last
// reset relative to now. Without override the triple may not exceed one cycle.
func ParseRemaining(now time.Time, days, hours, minutes string, override bool) (time.Time, error) {
	d, h, m, err := model.ParseTimeFields(days, hours, minutes)
	if err != nil {
		return time.Time{}, err
	}
	if !override && model.TotalMinutes(max(0, d), max(0, h), max(0, m)) > model.MaxTotalMinutes {
		return time.Time{}, common.ErrExceedsCycle
	}
	return model.ComputeLastReset(now, d, h, m, override), nil
}

// BuildCategories combines the selected palette entries with the
// comma-separated custom field, trimmed and without repeats.
func BuildCategories(selected []string, custom string) []string {
	categories := make([]string, 0, len(selected))
	for _, c := range selected {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	for _, c := range strings.Split(custom, ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	return model.DedupeCategories(categories)
}

// SplitCategories separates a vendor's categories into palette entries and
// the custom remainder, joined the way the custom field expects it.
func SplitCategories(categories, palette []string) ([]string, string) {
	selected := []string{}
	var custom []string
	for _, c := range categories {
		if slices.Contains(palette, c) {
			selected = append(selected, c)
		} else {
			custom = append(custom, c)
		}
	}
	return selected, strings.Join(custom, ", ")
}

// PrefillUpdate returns the form values that reproduce v's current state at now.
func PrefillUpdate(v *model.Vendor, palette []string, now time.Time) UpdateInput {
	d, h, m := model.SplitRemaining(v.NextReset().Sub(now))
	selected, custom := SplitCategories(v.Categories, palette)
	return UpdateInput{
		Council:    strconv.FormatFloat(float64(v.CouncilLeft)/councilUnit, 'f', -1, 64),
		Days:       strconv.Itoa(d),
		Hours:      strconv.Itoa(h),
		Minutes:    strconv.Itoa(m),
		Categories: selected,
		Custom:     custom,
	}
}
