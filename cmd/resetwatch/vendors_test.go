package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/resetwatch/internal/model"
	"github.com/Veraticus/resetwatch/internal/storage"
	"github.com/Veraticus/resetwatch/internal/tracker"
)

func TestVendorFlags_UpdateInputKeepsUnsetFields(t *testing.T) {
	prefill := tracker.UpdateInput{
		Council:    "12",
		Days:       "1",
		Hours:      "2",
		Minutes:    "3",
		Categories: []string{"Armor"},
		Custom:     "Rare",
	}
	flags := vendorFlags{council: "20", minutes: "45", categories: []string{"Misc"}, override: true}

	changed := func(names ...string) func(string) bool {
		return func(name string) bool {
			for _, n := range names {
				if n == name {
					return true
				}
			}
			return false
		}
	}

	tests := []struct {
		name    string
		changed func(string) bool
		want    tracker.UpdateInput
	}{
		{
			name:    "nothing changed",
			changed: changed(),
			want:    tracker.UpdateInput{Council: "12", Days: "1", Hours: "2", Minutes: "3", Categories: []string{"Armor"}, Custom: "Rare", Override: true},
		},
		{
			name:    "council and minutes",
			changed: changed("council", "minutes"),
			want:    tracker.UpdateInput{Council: "20", Days: "1", Hours: "2", Minutes: "45", Categories: []string{"Armor"}, Custom: "Rare", Override: true},
		},
		{
			name:    "categories replace palette only",
			changed: changed("category"),
			want:    tracker.UpdateInput{Council: "12", Days: "1", Hours: "2", Minutes: "3", Categories: []string{"Misc"}, Custom: "Rare", Override: true},
		},
		{
			name:    "clearing custom",
			changed: changed("custom"),
			want:    tracker.UpdateInput{Council: "12", Days: "1", Hours: "2", Minutes: "3", Categories: []string{"Armor"}, Custom: "", Override: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flags.updateInput(prefill, tt.changed))
		})
	}
}

func TestVendorsUpdate_KeepsFractionalCouncil(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	tr := tracker.New(store)
	require.NoError(t, tr.LoadCharacter(ctx, model.DefaultCharacter))

	tests := []struct {
		council string
		want    int
	}{
		{council: "1.5", want: 1500},
		{council: "0.5", want: 500},
		{council: "1.001", want: 1001},
		{council: "12", want: 12000},
	}

	for _, tt := range tests {
		t.Run(tt.council, func(t *testing.T) {
			name := "V" + tt.council
			_, err := tr.AddVendor(ctx, tracker.VendorInput{Name: name, Council: tt.council, Hours: "5"})
			require.NoError(t, err)

			prefill, err := tr.Prefill(name)
			require.NoError(t, err)

			flags := vendorFlags{days: "3"}
			in := flags.updateInput(prefill, func(flag string) bool { return flag == "days" })
			v, err := tr.UpdateVendor(ctx, name, in)
			require.NoError(t, err)

			assert.Equal(t, tt.want, v.CouncilLeft)
			assert.Equal(t, tt.want, v.ResetMaximum)
		})
	}
}

func TestCountVendors(t *testing.T) {
	assert.Equal(t, "0 vendors", countVendors(0))
	assert.Equal(t, "1 vendor", countVendors(1))
	assert.Equal(t, "3 vendors", countVendors(3))
}

func TestDescribeVendor(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	v := &model.Vendor{Name: "Ana", Zone: "Dusk", CouncilLeft: 12000, LastReset: now.Add(2*time.Hour - model.ResetCycle)}

	assert.Equal(t, "Dusk, 12K council, 0 days, 2h, 0m", describeVendor(v, now))

	v.Zone = ""
	assert.Equal(t, "12K council, 0 days, 2h, 0m", describeVendor(v, now))
}
