package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.All())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "gifex")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_SetPersistsImmediately(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("search.policy", "strict"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[search]")
	assert.Contains(t, string(data), "policy = 'strict'")
}

func TestConfigStore_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("search.container_key", "favoriteGifs"))
	require.NoError(t, store.Set("open.rate", 2.5))
	require.NoError(t, store.Set("open.burst", 3))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "favoriteGifs", reopened.GetString("search.container_key"))
	assert.InDelta(t, 2.5, reopened.GetFloat("open.rate"), 1e-9)
	assert.Equal(t, 3, reopened.GetInt("open.burst"))
	assert.InDelta(t, 3.0, reopened.GetFloat("open.burst"), 1e-9)
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[search]
list_key = "stickers"

[open]
target = "id"
rate = 1
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "stickers", store.GetString("search.list_key"))
	assert.Equal(t, "id", store.GetString("open.target"))
	assert.InDelta(t, 1.0, store.GetFloat("open.rate"), 1e-9)
}

func TestConfigStore_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[[[nope"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "text"))

	assert.Zero(t, store.GetInt("k"))
	assert.Zero(t, store.GetFloat("k"))
	assert.Empty(t, store.GetString("missing"))
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"search": map[string]any{"policy": "skip"},
		"top":    1,
	}

	assert.Equal(t, map[string]any{"search.policy": "skip", "top": 1}, flattenMap(nested, ""))
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"search.policy": "skip",
		"search.list":   "gifs",
		"top":           1,
	}

	want := map[string]any{
		"search": map[string]any{"policy": "skip", "list": "gifs"},
		"top":    1,
	}
	assert.Equal(t, want, nestMap(flat))
	assert.Equal(t, flat, flattenMap(nestMap(flat), ""))
}
