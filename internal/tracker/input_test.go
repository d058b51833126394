package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

func TestParseCouncil(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "blank", raw: "  ", want: 0},
		{name: "whole", raw: "12", want: 12000},
		{name: "fraction", raw: "1.5", want: 1500},
		{name: "rounds below a unit", raw: "0.0009", want: 1},
		{name: "thousandths", raw: "1.001", want: 1001},
		{name: "sub unit", raw: "0.5", want: 500},
		{name: "padded", raw: " 3 ", want: 3000},
		{name: "words", raw: "ten", wantErr: true},
		{name: "suffix", raw: "5k", wantErr: true},
		{name: "nan", raw: "NaN", wantErr: true},
		{name: "inf", raw: "Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCouncil(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidCurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRemaining(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		days     string
		hours    string
		minutes  string
		wantNext time.Duration
		override bool
	}{
		{name: "within cycle", days: "1", hours: "2", minutes: "3", wantNext: 26*time.Hour + 3*time.Minute},
		{name: "blank is due now", wantNext: 0},
		{name: "ceiling", days: "6", hours: "23", minutes: "59", wantNext: model.MaxTotalMinutes * time.Minute},
		{name: "over ceiling", days: "6", hours: "23", minutes: "60", wantErr: common.ErrExceedsCycle},
		{name: "overflowing hours", hours: "200", wantErr: common.ErrExceedsCycle},
		{name: "override allows days", days: "10", override: true, wantNext: 240 * time.Hour},
		{name: "override caps hours", hours: "30", override: true, wantNext: 23 * time.Hour},
		{name: "not a number", minutes: "x", wantErr: common.ErrInvalidTimeField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lastReset, err := ParseRemaining(testNow, tt.days, tt.hours, tt.minutes, tt.override)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNext, lastReset.Add(model.ResetCycle).Sub(testNow))
		})
	}
}

func TestBuildCategories(t *testing.T) {
	tests := []struct {
		name     string
		custom   string
		selected []string
		want     []string
	}{
		{name: "nothing", want: []string{}},
		{name: "palette only", selected: []string{"Armor", "Misc"}, want: []string{"Armor", "Misc"}},
		{name: "custom list", custom: " Rare ,Odd,,", want: []string{"Rare", "Odd"}},
		{name: "dedupe keeps first", selected: []string{"Misc"}, custom: "Misc, misc", want: []string{"Misc", "misc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildCategories(tt.selected, tt.custom))
		})
	}
}

func TestSplitCategories(t *testing.T) {
	selected, custom := SplitCategories([]string{"Armor", "Rare", "Misc", "Odd"}, DefaultCategories)
	assert.Equal(t, []string{"Armor", "Misc"}, selected)
	assert.Equal(t, "Rare, Odd", custom)

	selected, custom = SplitCategories(nil, DefaultCategories)
	assert.Empty(t, selected)
	assert.Empty(t, custom)
}
