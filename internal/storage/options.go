package storage

import (
	"log/slog"
	"time"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
	"github.com/Veraticus/resetwatch/internal/service"
)

// Option configures a store.
type Option func(*options)

type options struct {
	clock  service.Clock
	policy model.SeedPolicy
	retry  common.RetryOptions
}

func defaultOptions() options {
	return options{
		clock:  service.SystemClock{},
		policy: model.SeedRaw,
		retry: common.RetryOptions{
			MaxAttempts:  4,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     time.Second,
		},
	}
}

// WithSeedPolicy sets how reset maximums are seeded when records are read.
func WithSeedPolicy(policy model.SeedPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithClock sets the clock used for last-reset fallbacks.
func WithClock(clock service.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithRetry sets how SQLiteStore retries saves that hit a locked database.
func WithRetry(retry common.RetryOptions) Option {
	return func(o *options) {
		o.retry = retry
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// decode runs DecodeRecord and logs every skipped entry or fallback.
func (o options) decode(data []byte, characterID string) ([]*model.Vendor, error) {
	vendors, diagnostics, err := DecodeRecord(data, o.policy, o.clock.Now())
	if err != nil {
		return nil, err
	}
	for _, d := range diagnostics {
		slog.Warn("Problem reading vendor record",
			"character", characterID,
			"error", d)
	}
	return vendors, nil
}
