package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyOpenAIModel, "gpt-4o-mini"))
	require.NoError(t, store.Set(KeyWindowSize, 2000))
	require.NoError(t, store.Set("debug.enabled", true))

	assert.Equal(t, "gpt-4o-mini", store.GetString(KeyOpenAIModel))
	assert.Equal(t, 2000, store.GetInt(KeyWindowSize))
	assert.True(t, store.GetBool("debug.enabled"))
}

func TestConfigStore_MissingAndWrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))

	require.NoError(t, store.Set("str", "value"))
	assert.Zero(t, store.GetInt("str"))
	assert.False(t, store.GetBool("str"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyOpenAIAPIKey, "sk-test"))
	require.NoError(t, store.Set(KeyWindowStep, 1000))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", reopened.GetString(KeyOpenAIAPIKey))
	assert.Equal(t, 1000, reopened.GetInt(KeyWindowStep))
}

func TestConfigStore_WritesNestedTOML(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyOpenAIAPIKey, "sk-test"))
	require.NoError(t, store.Set(KeyOpenAIModel, "gpt-4o-mini"))

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	// Dot-notation keys are written as nested tables.
	assert.Contains(t, string(data), "[openai]")
	assert.Contains(t, string(data), "api_key = 'sk-test'")
}

func TestConfigStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyOpenAIAPIKey, "sk-test"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	nested := map[string]any{
		"openai": map[string]any{"model": "gpt-4o-mini"},
		"top":    "level",
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{"openai.model": "gpt-4o-mini", "top": "level"}, flat)

	assert.Equal(t, nested, unflattenMap(flat))
}

func TestSplitKey(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitKey("a.b.c"))
	assert.Equal(t, []string{"plain"}, splitKey("plain"))
}
