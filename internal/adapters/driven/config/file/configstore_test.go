package file

import (
	"os"
	"path/filepath"
	"sync"
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
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", "127.0.0.1:7474"))
	require.NoError(t, store.Set("server.rate_limit", 20))
	require.NoError(t, store.Set("debug", true))

	assert.Equal(t, "127.0.0.1:7474", store.GetString("server.addr"))
	assert.Equal(t, 20, store.GetInt("server.rate_limit"))
	assert.True(t, store.GetBool("debug"))

	// Scalars format as strings; unparseable and missing keys are zero
	assert.Equal(t, "20", store.GetString("server.rate_limit"))
	assert.Equal(t, 0, store.GetInt("server.addr"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_HandEditedValues(t *testing.T) {
	tmpDir := t.TempDir()
	doc := "[server]\nrate_limit = \"15\"\n\n[viewer]\npoll_interval = \"2s\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(doc), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 15, store.GetInt("server.rate_limit"))
	assert.Equal(t, "2s", store.GetString("viewer.poll_interval"))
}

func TestConfigStore_SaveLeavesNoTempFiles(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", ":9000"))
	require.NoError(t, store.Set("store.backend", "file"))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ConfigFileName, entries[0].Name())
}

func TestConfigStore_Persistence_NestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("store.backend", "file"))
	require.NoError(t, store.Set("server.addr", ":9000"))
	require.NoError(t, store.Set("server.rate_limit", 5))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[server]")
	assert.Contains(t, string(data), "[store]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "file", reloaded.GetString("store.backend"))
	assert.Equal(t, ":9000", reloaded.GetString("server.addr"))
	// TOML integers come back as int64
	assert.Equal(t, 5, reloaded.GetInt("server.rate_limit"))
	assert.Equal(t, []string{"server.addr", "server.rate_limit", "store.backend"}, reloaded.Keys())
}

func TestConfigStore_Unset(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("store.path", "/tmp/notes"))
	require.NoError(t, store.Unset("store.path"))
	require.NoError(t, store.Unset("never.set"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reloaded.Get("store.path")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[[[bad"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("server.rate_limit", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("server.rate_limit")
		}()
	}
	wg.Wait()

	_, ok := store.Get("server.rate_limit")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want map[string]any
	}{
		{
			name: "flat key",
			in:   map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
		{
			name: "shared prefix",
			in:   map[string]any{"server.addr": "x", "server.rate_limit": 2},
			want: map[string]any{"server": map[string]any{"addr": "x", "rate_limit": 2}},
		},
		{
			name: "value and table conflict",
			in:   map[string]any{"a": 1, "a.b": 2},
			want: map[string]any{"a": 1, "a.b": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nestMap(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, flattenMap(got, ""))
		})
	}
}
