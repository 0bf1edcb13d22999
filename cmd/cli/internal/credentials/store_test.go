package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		configDir := filepath.Join(tmpDir, "shiftclock")

		store, err := NewStore(configDir)
		require.NoError(t, err)
		assert.NotNil(t, store)

		info, err := os.Stat(configDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})

	t.Run("creates config.json on initialization", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		configPath := filepath.Join(tmpDir, "config.json")
		_, err = os.Stat(configPath)
		require.NoError(t, err)

		cfg, err := store.loadConfig()
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Version)
		assert.Empty(t, cfg.DefaultProfile)
		assert.Empty(t, cfg.Profiles)
	})
}

func TestStoreSave(t *testing.T) {
	t.Run("first profile becomes the default", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		err = store.Save("work", Profile{Server: "http://localhost:8080", Username: "alice", Token: "tok"})
		require.NoError(t, err)

		profile, err := store.GetDefault()
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
		assert.Equal(t, "tok", profile.Token)
		assert.False(t, profile.UpdatedAt.IsZero())
	})

	t.Run("saving again replaces the profile", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save("work", Profile{Server: "http://a", Token: "t1"}))
		require.NoError(t, store.Save("work", Profile{Server: "http://a", Token: "t2"}))

		profile, err := store.Get("work")
		require.NoError(t, err)
		assert.Equal(t, "t2", profile.Token)
	})

	t.Run("config file is owner-only", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Save("work", Profile{Server: "http://a", Token: "secret"}))

		info, err := os.Stat(filepath.Join(tmpDir, "config.json"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestStoreGet(t *testing.T) {
	t.Run("missing profile", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Get("nope")
		require.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("no default set", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.GetDefault()
		require.ErrorIs(t, err, ErrNoDefaultProfile)
	})
}

func TestStoreDelete(t *testing.T) {
	t.Run("delete clears the default", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save("work", Profile{Server: "http://a", Token: "t"}))
		require.NoError(t, store.Delete("work"))

		_, err = store.Get("work")
		require.ErrorIs(t, err, ErrProfileNotFound)

		_, err = store.GetDefault()
		require.ErrorIs(t, err, ErrNoDefaultProfile)
	})

	t.Run("delete missing profile", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		err = store.Delete("nope")
		require.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestStoreSetDefault(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("work", Profile{Server: "http://a", Token: "t1"}))
	require.NoError(t, store.Save("home", Profile{Server: "http://b", Token: "t2"}))

	require.NoError(t, store.SetDefault("home"))

	profile, err := store.GetDefault()
	require.NoError(t, err)
	assert.Equal(t, "t2", profile.Token)

	require.ErrorIs(t, store.SetDefault("nope"), ErrProfileNotFound)
}
