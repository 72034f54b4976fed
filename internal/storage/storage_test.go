package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/tango/internal/recent"
)

func openStores(t *testing.T) map[string]recent.Store {
	t.Helper()

	sqlite, err := OpenSQLite(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	file, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	return map[string]recent.Store{
		"memory": NewMemoryStore(),
		"file":   file,
		"sqlite": sqlite,
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("k", `["a"]`))
			v, ok, err := s.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `["a"]`, v)

			require.NoError(t, s.Set("k", `["b","a"]`))
			v, _, _ = s.Get("k")
			assert.Equal(t, `["b","a"]`, v)

			require.NoError(t, s.Set("other", "x"))
			require.NoError(t, s.Remove("k"))
			_, ok, err = s.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)

			v, ok, _ = s.Get("other")
			assert.True(t, ok)
			assert.Equal(t, "x", v)

			assert.NoError(t, s.Remove("k"), "removing a missing key")
		})
	}
}

func TestStoresBackRecentList(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			l, err := recent.New(s, recent.WithCapacity(2))
			require.NoError(t, err)

			l.Add("cat")
			l.Add("dog")
			assert.Equal(t, []string{"bird", "dog"}, l.Add("bird"))

			l.Clear()
			_, ok, err := s.Get(recent.DefaultKey)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenSQLite(dir)
	require.NoError(t, err)
	l, err := recent.New(s)
	require.NoError(t, err)
	want := l.Add("neko")
	require.NoError(t, s.Close())

	s, err = OpenSQLite(dir)
	require.NoError(t, err)
	defer s.Close()
	l, err = recent.New(s)
	require.NoError(t, err)
	assert.Equal(t, want, l.Load())
	assert.Equal(t, filepath.Join(dir, "tango.db"), s.Path())
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path(), []byte("[not an object"), 0o644))

	_, _, err = s.Get("k")
	assert.Error(t, err)
	assert.Error(t, s.Set("k", "v"))

	l, err := recent.New(s)
	require.NoError(t, err)
	assert.Empty(t, l.Load())
	_, err = l.LoadState()
	assert.ErrorIs(t, err, recent.ErrStoreUnavailable)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "recents.json", entries[0].Name())
}

func TestOpen(t *testing.T) {
	for _, name := range []string{"", StoreSQLite, StoreFile, StoreMemory} {
		t.Run("store="+name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Store = name
			s, closer, err := Open(&cfg, t.TempDir())
			require.NoError(t, err)
			defer closer.Close()
			assert.NoError(t, s.Set("k", "v"))
		})
	}

	cfg := DefaultConfig()
	cfg.Store = "redis"
	_, _, err := Open(&cfg, t.TempDir())
	assert.EqualError(t, err, `unknown store: "redis" (want sqlite, file or memory)`)
}

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().StorageKey, cfg.StorageKey)
	assert.Equal(t, 8, cfg.Capacity)
	assert.Equal(t, path, cfg.Path())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "storage_key")
	assert.Contains(t, string(data), "recentWords")
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("capacity = 3\nstore = 'file'\n"), 0o644))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Capacity)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "query", cfg.QueryParam, "unset fields keep defaults")
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("capacity = = 3"), 0o644))

	_, err := LoadConfigFrom(path)
	assert.ErrorContains(t, err, "parsing config")
}
