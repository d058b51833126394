// Package tracker holds the active character and its vendors, and is the only
// place that mutates them. Every mutation is persisted before it becomes
// visible.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
	"github.com/Veraticus/resetwatch/internal/service"
)

// Tracker is not safe for concurrent use; the TUI update loop or a single
// CLI command owns it.
type Tracker struct {
	store     service.VendorStore
	clock     service.Clock
	character string
	policy    model.SeedPolicy
	palette   []string
	vendors   []*model.Vendor
	// loadErr is the failure from the last LoadCharacter. While set and
	// nothing has been saved, Flush leaves the stored record alone.
	loadErr error
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the time source.
func WithClock(clock service.Clock) Option {
	return func(t *Tracker) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithSeedPolicy sets how reset maximums are seeded for new vendors.
func WithSeedPolicy(policy model.SeedPolicy) Option {
	return func(t *Tracker) {
		t.policy = policy
	}
}

// WithCategories sets the category palette.
func WithCategories(categories []string) Option {
	return func(t *Tracker) {
		if len(categories) > 0 {
			t.palette = slices.Clone(categories)
		}
	}
}

// New creates a tracker with no character loaded.
func New(store service.VendorStore, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		clock:   service.SystemClock{},
		policy:  model.SeedRaw,
		palette: slices.Clone(DefaultCategories),
		vendors: []*model.Vendor{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Character returns the active character id.
func (t *Tracker) Character() string {
	return t.character
}

// Categories returns the category palette.
func (t *Tracker) Categories() []string {
	return slices.Clone(t.palette)
}

// Now reads the tracker's clock.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// Vendors returns a copy of the active collection in stored order.
func (t *Tracker) Vendors() []*model.Vendor {
	return model.CloneAll(t.vendors)
}

// Vendor returns a copy of the named vendor.
func (t *Tracker) Vendor(name string) (*model.Vendor, error) {
	i := model.IndexOf(t.vendors, name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrVendorNotFound, name)
	}
	return t.vendors[i].Clone(), nil
}

// ListCharacters returns stored character ids, sorted, with the default
// character first when it has no record yet.
func (t *Tracker) ListCharacters(ctx context.Context) ([]string, error) {
	stored, err := t.store.ListCharacters(ctx)
	if err != nil {
		return []string{model.DefaultCharacter}, fmt.Errorf("failed to list characters: %w", err)
	}
	slices.Sort(stored)
	if !slices.Contains(stored, model.DefaultCharacter) {
		stored = append([]string{model.DefaultCharacter}, stored...)
	}
	return stored, nil
}

// LoadCharacter switches to id and loads its vendors. When loading fails the
// tracker still switches, with an empty collection.
func (t *Tracker) LoadCharacter(ctx context.Context, id string) error {
	t.character = id
	t.loadErr = nil
	vendors, err := t.store.Load(ctx, id)
	if err != nil {
		t.vendors = []*model.Vendor{}
		t.loadErr = fmt.Errorf("failed to load %s: %w", id, err)
		common.LogError(err, "Failed to load vendors", common.Fields{"character": id})
		return t.loadErr
	}
	t.vendors = vendors
	common.LogDebug("Loaded vendors", common.Fields{"character": id, "count": len(vendors)})
	return nil
}

// LoadErr returns why the active character's record could not be read, or
// nil once it loaded or has since been saved.
func (t *Tracker) LoadErr() error {
	return t.loadErr
}

// CreateCharacter registers a new character, seeding it with a copy of the
// default character's vendors when that record exists, and switches to it.
// It returns the normalized id.
func (t *Tracker) CreateCharacter(ctx context.Context, name string) (string, error) {
	id, err := model.NormalizeCharacterName(name)
	if err != nil {
		return "", err
	}

	exists, err := t.store.Exists(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to check character: %w", err)
	}
	if exists || id == model.DefaultCharacter {
		return "", fmt.Errorf("%w: %s", common.ErrCharacterExists, id)
	}

	seed := []*model.Vendor{}
	hasDefault, err := t.store.Exists(ctx, model.DefaultCharacter)
	if err != nil {
		return "", fmt.Errorf("failed to check default character: %w", err)
	}
	if hasDefault {
		seed, err = t.store.Load(ctx, model.DefaultCharacter)
		if err != nil {
			return "", fmt.Errorf("failed to load default character: %w", err)
		}
	}

	if err := t.store.Save(ctx, id, seed); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", id, err)
	}

	t.character = id
	t.vendors = seed
	t.loadErr = nil
	common.LogInfo("Created character", common.Fields{"character": id, "seeded": len(seed)})
	return id, nil
}

// Flush writes the active collection. It is called on exit; failures are
// logged as well as returned. A record that failed to load and was never
// replaced is kept as it is on disk.
func (t *Tracker) Flush(ctx context.Context) error {
	if t.character == "" {
		return nil
	}
	if t.loadErr != nil {
		common.LogWarn(t.loadErr, "Not saving vendors on exit, record was unreadable", common.Fields{"character": t.character})
		return nil
	}
	if err := t.store.Save(ctx, t.character, t.vendors); err != nil {
		common.LogError(err, "Failed to save vendors on exit", common.Fields{"character": t.character})
		return err
	}
	return nil
}

// commit saves next as the active collection and adopts it only on success.
func (t *Tracker) commit(ctx context.Context, next []*model.Vendor) error {
	if t.character == "" {
		return errors.New("no character loaded")
	}
	if err := t.store.Save(ctx, t.character, next); err != nil {
		return common.NewUserError("Could not save vendors", err)
	}
	t.vendors = next
	t.loadErr = nil
	return nil
}
