package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoragePut(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "1700000000-abc.png", "image/png", strings.NewReader("png bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000-abc.png", url)

	written, err := os.ReadFile(filepath.Join(dir, "1700000000-abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(written))
}

func TestLocalStorageRejectsPathKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	for _, key := range []string{"../escape.png", "nested/key.png", "/abs.png"} {
		_, err := store.Put(context.Background(), key, "image/png", strings.NewReader("x"))
		assert.Error(t, err, key)
	}
}

func TestLocalStorageCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "uploads")
	store, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
