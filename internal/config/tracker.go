package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// MaxCategories is the largest category palette; the vendor form toggles
// entries with the digit keys 1 to 9. Further categories go in the custom field.
const MaxCategories = 9

// TrackerConfig holds everything needed to open a tracker.
type TrackerConfig struct {
	DataDir    string
	Backend    string
	SQLitePath string
	SeedPolicy model.SeedPolicy
	Character  string
	Categories []string
}

// DefaultTrackerConfig returns the configuration used when nothing is set.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		DataDir:    defaultDataPath("character_data"),
		Backend:    BackendJSON,
		SQLitePath: defaultDataPath("resetwatch.db"),
		SeedPolicy: model.SeedRaw,
		Categories: []string{"Jewelry", "Armor", "Weapons", "Scrolls", "Misc"},
	}
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", name)
	}
	return filepath.Join(home, ".local", "share", "resetwatch", name)
}

// LoadTrackerConfig loads tracker configuration from Viper (config file or
// RESETWATCH_ env vars) on top of the defaults.
func LoadTrackerConfig() (*TrackerConfig, error) {
	config := DefaultTrackerConfig()

	if v := viper.GetString("data.dir"); v != "" {
		config.DataDir = ExpandPath(v)
	}
	if v := viper.GetString("storage.backend"); v != "" {
		config.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := viper.GetString("storage.sqlite_path"); v != "" {
		config.SQLitePath = ExpandPath(v)
	}
	if v := viper.GetString("vendors.seed_policy"); v != "" {
		policy, err := model.ParseSeedPolicy(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
		config.SeedPolicy = policy
	}
	if v := viper.GetStringSlice("vendors.categories"); len(v) > 0 {
		config.Categories = cleanCategories(v)
	}
	config.Character = strings.TrimSpace(viper.GetString("character"))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// cleanCategories trims entries and accepts a single comma-separated value,
// which is how an env var arrives.
func cleanCategories(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, c := range strings.Split(entry, ",") {
			if c = strings.TrimSpace(c); c != "" {
				out = append(out, c)
			}
		}
	}
	return model.DedupeCategories(out)
}

// Validate checks that the configuration is usable.
func (c *TrackerConfig) Validate() error {
	switch c.Backend {
	case BackendJSON:
		if c.DataDir == "" {
			return fmt.Errorf("%w: data.dir", common.ErrMissingConfig)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: storage.sqlite_path", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q (want %q or %q)",
			common.ErrInvalidConfig, c.Backend, BackendJSON, BackendSQLite)
	}

	if _, err := model.ParseSeedPolicy(string(c.SeedPolicy)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: vendors.categories cannot be empty", common.ErrInvalidConfig)
	}
	if len(c.Categories) > MaxCategories {
		return fmt.Errorf("%w: vendors.categories has %d entries (at most %d)",
			common.ErrInvalidConfig, len(c.Categories), MaxCategories)
	}

	return nil
}
