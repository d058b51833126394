package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/resetwatch/internal/model"
	"github.com/Veraticus/resetwatch/internal/storage"
)

func TestCopyCharacters(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	src, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	dst, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = dst.Close() }()
	require.NoError(t, dst.Migrate(ctx))

	alice := []*model.Vendor{
		{Name: "Ana", Zone: "Dusk", CouncilLeft: 12000, ResetMaximum: 20000, LastReset: now, Categories: []string{"Armor"}},
	}
	require.NoError(t, src.Save(ctx, "Alice", alice))
	require.NoError(t, src.Save(ctx, "Bob", []*model.Vendor{}))

	var progress bytes.Buffer
	copied, err := copyCharacters(ctx, src, dst, &progress)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)
	assert.Contains(t, progress.String(), "Copying characters")

	characters, err := dst.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, characters)

	got, err := dst.Load(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Name)
	assert.Equal(t, 20000, got[0].ResetMaximum)
	assert.True(t, now.Equal(got[0].LastReset))
}

func TestCopyCharacters_EmptySource(t *testing.T) {
	src, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	dst, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	var progress bytes.Buffer
	copied, err := copyCharacters(context.Background(), src, dst, &progress)
	require.NoError(t, err)
	assert.Zero(t, copied)
	assert.Empty(t, progress.String())
}

func TestCopyCharacters_CanceledContext(t *testing.T) {
	src, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, src.Save(context.Background(), "Alice", []*model.Vendor{}))
	dst, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = copyCharacters(ctx, src, dst, &bytes.Buffer{})
	require.Error(t, err)
}
