package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/service"
)

func TestUnavailableStore(t *testing.T) {
	cause := errors.New("mkdir /data: not a directory")
	var store service.VendorStore = NewUnavailableStore(cause)
	ctx := context.Background()

	characters, err := store.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Empty(t, characters)

	exists, err := store.Exists(ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, exists)

	vendors, err := store.Load(ctx, "Alice")
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotNil(t, vendors)
	assert.Empty(t, vendors)

	err = store.Save(ctx, "Alice", nil)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.NoError(t, store.Close())
}

func TestNewUnavailableStore_KeepsWrappedCause(t *testing.T) {
	cause := fmt.Errorf("%w: failed to create data directory", common.ErrStorageUnavailable)
	store := NewUnavailableStore(cause)
	assert.Equal(t, cause, store.Save(context.Background(), "Alice", nil))
}
