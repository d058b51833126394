package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

// AddVendor validates in and stores a new vendor. A vendor with the same name
// is replaced in place.
func (t *Tracker) AddVendor(ctx context.Context, in VendorInput) (*model.Vendor, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, common.ErrEmptyName
	}
	council, err := ParseCouncil(in.Council)
	if err != nil {
		return nil, err
	}
	lastReset, err := ParseRemaining(t.clock.Now(), in.Days, in.Hours, in.Minutes, in.Override)
	if err != nil {
		return nil, err
	}

	v := model.NewVendor(name, strings.TrimSpace(in.Zone), council, lastReset, council,
		BuildCategories(in.Categories, in.Custom), t.policy)

	next := model.Upsert(model.CloneAll(t.vendors), v)
	if err := t.commit(ctx, next); err != nil {
		return nil, err
	}
	common.LogInfo("Added vendor", common.Fields{"character": t.character, "vendor": name})
	return v.Clone(), nil
}

// UpdateVendor replaces the named vendor's council, reset time and categories.
func (t *Tracker) UpdateVendor(ctx context.Context, name string, in UpdateInput) (*model.Vendor, error) {
	council, err := ParseCouncil(in.Council)
	if err != nil {
		return nil, err
	}
	lastReset, err := ParseRemaining(t.clock.Now(), in.Days, in.Hours, in.Minutes, in.Override)
	if err != nil {
		return nil, err
	}

	return t.mutate(ctx, name, "Updated vendor", func(v *model.Vendor) {
		v.ApplyUpdate(council, lastReset, BuildCategories(in.Categories, in.Custom))
	})
}

// ResetVendor marks the named vendor as reset now.
func (t *Tracker) ResetVendor(ctx context.Context, name string) (*model.Vendor, error) {
	now := t.clock.Now()
	return t.mutate(ctx, name, "Reset vendor", func(v *model.Vendor) {
		v.ResetNow(now)
	})
}

// DeleteVendor removes the named vendor.
func (t *Tracker) DeleteVendor(ctx context.Context, name string) error {
	next, ok := model.Remove(t.vendors, name)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrVendorNotFound, name)
	}
	if err := t.commit(ctx, next); err != nil {
		return err
	}
	common.LogInfo("Deleted vendor", common.Fields{"character": t.character, "vendor": name})
	return nil
}

// mutate applies fn to a copy of the named vendor and commits the result.
func (t *Tracker) mutate(ctx context.Context, name, msg string, fn func(*model.Vendor)) (*model.Vendor, error) {
	i := model.IndexOf(t.vendors, name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrVendorNotFound, name)
	}

	next := model.CloneAll(t.vendors)
	fn(next[i])
	if err := t.commit(ctx, next); err != nil {
		return nil, err
	}
	common.LogInfo(msg, common.Fields{"character": t.character, "vendor": name})
	return next[i].Clone(), nil
}
