package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("database is locked")

func fastRetry(attempts int) RetryOptions {
	return RetryOptions{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestWithRetry(t *testing.T) {
	tests := []struct {
		wantErr   error
		failures  []error
		name      string
		wantCalls int
	}{
		{name: "first try", wantCalls: 1},
		{name: "recovers", failures: []error{errFlaky, errFlaky}, wantCalls: 3},
		{name: "gives up", failures: []error{errFlaky, errFlaky, errFlaky}, wantCalls: 3, wantErr: ErrMaxRetries},
		{
			name:      "permanent error stops",
			failures:  []error{&RetryableError{Err: ErrCorruptRecord}},
			wantCalls: 1,
			wantErr:   ErrCorruptRecord,
		},
		{
			name:      "retryable error continues",
			failures:  []error{&RetryableError{Err: errFlaky, Retryable: true}},
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			}, fastRetry(3))

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithRetry_GiveUpKeepsCause(t *testing.T) {
	err := WithRetry(context.Background(), func() error { return errFlaky }, fastRetry(2))
	require.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, errFlaky)
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		return errFlaky
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
