package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
	"github.com/Veraticus/resetwatch/internal/service"
)

func createTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), WithClock(service.ClockFunc(func() time.Time { return codecNow })))
	require.NoError(t, err)
	return store
}

func testVendors() []*model.Vendor {
	return []*model.Vendor{
		{
			Name:         "Armorer",
			Zone:         "Kur",
			CouncilLeft:  5000,
			ResetMaximum: 9000,
			LastReset:    time.Date(2024, 4, 28, 10, 0, 0, 0, time.UTC),
			Categories:   []string{"Armor"},
		},
		{
			Name:       "Jeweler",
			Zone:       "Zermatt",
			LastReset:  time.Date(2024, 4, 29, 18, 30, 15, 0, time.UTC),
			Categories: []string{},
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := createTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "Alice", testVendors()))

	loaded, err := store.Load(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i, want := range testVendors() {
		got := loaded[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Zone, got.Zone)
		assert.Equal(t, want.CouncilLeft, got.CouncilLeft)
		assert.Equal(t, want.ResetMaximum, got.ResetMaximum)
		assert.Equal(t, want.Categories, got.Categories)
		assert.True(t, want.LastReset.Truncate(time.Second).Equal(got.LastReset.Truncate(time.Second)))
	}

	_, err = os.Stat(filepath.Join(store.Dir(), "Alice_vendors.json"))
	assert.NoError(t, err)
}

func TestFileStore_MissingRecordIsEmpty(t *testing.T) {
	store := createTestFileStore(t)

	vendors, err := store.Load(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.NotNil(t, vendors)
	assert.Empty(t, vendors)

	exists, err := store.Exists(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileStore_CorruptRecord(t *testing.T) {
	store := createTestFileStore(t)
	path := filepath.Join(store.Dir(), "Broken_vendors.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := store.Load(context.Background(), "Broken")
	assert.ErrorIs(t, err, common.ErrCorruptRecord)
}

func TestFileStore_LegacyRecord(t *testing.T) {
	store := createTestFileStore(t)
	legacy := `{"vendor_list": [{"name": "Old", "zone": "Kur", "council_left": 10, "last_reset": "2024-04-28 10:00:00", "reset_maximum": 10, "categories": ["Misc"]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "Legacy_vendors.json"), []byte(legacy), 0600))

	vendors, err := store.Load(context.Background(), "Legacy")
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Old", vendors[0].Name)

	// saving rewrites the record in list form
	require.NoError(t, store.Save(context.Background(), "Legacy", vendors))
	data, err := os.ReadFile(filepath.Join(store.Dir(), "Legacy_vendors.json"))
	require.NoError(t, err)
	assert.Equal(t, byte('['), data[0])
}

func TestFileStore_SanitizesCharacterID(t *testing.T) {
	store := createTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "Al!ce 2", testVendors()))

	exists, err := store.Exists(ctx, "Alice 2")
	require.NoError(t, err)
	assert.True(t, exists)

	err = store.Save(ctx, "???", testVendors())
	assert.ErrorIs(t, err, common.ErrInvalidCharacter)
}

func TestFileStore_ListCharacters(t *testing.T) {
	store := createTestFileStore(t)
	ctx := context.Background()

	for _, id := range []string{"Zed", "Alice", "Default"} {
		require.NoError(t, store.Save(ctx, id, []*model.Vendor{}))
	}
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0600))

	characters, err := store.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Default", "Zed"}, characters)
}

func TestFileStore_SaveRejectsInvalidVendor(t *testing.T) {
	store := createTestFileStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "Alice", testVendors()))

	err := store.Save(ctx, "Alice", []*model.Vendor{{Name: ""}})
	assert.ErrorIs(t, err, ErrInvalidVendor)

	// the earlier record is untouched
	vendors, err := store.Load(ctx, "Alice")
	require.NoError(t, err)
	assert.Len(t, vendors, 2)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
