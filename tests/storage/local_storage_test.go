package storage_test

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/solstice-events/bookings-api/internal/config"
	"github.com/solstice-events/bookings-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorageRoundtrip(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	content := "signed contract body"
	path, size, err := store.Upload(ctx, "contract.pdf", "application/pdf", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)
	assert.Equal(t, ".pdf", filepath.Ext(path))

	reader, err := store.Download(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLocalStorageUniquePaths(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first, _, err := store.Upload(ctx, "doc.pdf", "application/pdf", strings.NewReader("one"))
	require.NoError(t, err)
	second, _, err := store.Upload(ctx, "doc.pdf", "application/pdf", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStorageDelete(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	path, _, err := store.Upload(ctx, "doc.txt", "text/plain", strings.NewReader("temporary"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, path))

	_, err = store.Download(ctx, path)
	assert.Error(t, err)

	// deleting an already-removed file is not an error
	assert.NoError(t, store.Delete(ctx, path))
}

func TestLocalStorageDownloadMissing(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Download(context.Background(), "no/such/file.pdf")
	assert.Error(t, err)
}

func TestNewStorageModeSelection(t *testing.T) {
	logger := zap.NewNop()

	local, err := storage.NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.NotNil(t, local)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "cloud"}, logger)
	assert.Error(t, err)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "carrier-pigeon"}, logger)
	assert.Error(t, err)
}
