package tracker

import (
	"fmt"
	"time"

	"github.com/Veraticus/resetwatch/internal/cluster"
	"github.com/Veraticus/resetwatch/internal/common"
)

// Totals are the summed council figures of the active collection.
type Totals struct {
	Council int
	Maximum int
}

// QueryAndCluster groups the vendors matching filter by reset proximity.
func (t *Tracker) QueryAndCluster(filter string) []cluster.Cluster {
	return cluster.GroupByResetProximity(t.Vendors(), filter)
}

// Totals sums council left and reset maximum over every vendor, ignoring any
// filter.
func (t *Tracker) Totals() Totals {
	var totals Totals
	for _, v := range t.vendors {
		totals.Council += v.CouncilLeft
		totals.Maximum += v.ResetMaximum
	}
	return totals
}

// GlobalNextReset returns the time until the earliest upcoming reset. It
// reports false when there are no vendors.
func (t *Tracker) GlobalNextReset() (time.Duration, bool) {
	next, ok := cluster.NextReset(t.vendors)
	if !ok {
		return 0, false
	}
	return next.Sub(t.clock.Now()), true
}

// GlobalCountdown renders GlobalNextReset for display.
func (t *Tracker) GlobalCountdown() string {
	remaining, ok := t.GlobalNextReset()
	if !ok {
		return common.NoResetLabel
	}
	return common.FormatCountdown(remaining)
}

// Countdown returns the time until the named vendor resets.
func (t *Tracker) Countdown(name string) (time.Duration, error) {
	v, err := t.Vendor(name)
	if err != nil {
		return 0, err
	}
	return v.NextReset().Sub(t.clock.Now()), nil
}

// Status classifies the named vendor at the current time.
func (t *Tracker) Status(name string) (cluster.Status, error) {
	v, err := t.Vendor(name)
	if err != nil {
		return cluster.StatusNormal, err
	}
	return cluster.Classify(v, t.clock.Now()), nil
}

// Prefill returns update form values for the named vendor.
func (t *Tracker) Prefill(name string) (UpdateInput, error) {
	v, err := t.Vendor(name)
	if err != nil {
		return UpdateInput{}, fmt.Errorf("cannot prefill: %w", err)
	}
	return PrefillUpdate(v, t.palette, t.clock.Now()), nil
}
