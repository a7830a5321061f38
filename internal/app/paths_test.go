package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths("/project")
	assert.Equal(t, filepath.Join("/project", ".reviewbot"), p.Root)
	assert.Equal(t, filepath.Join("/project", ".reviewbot", "cache.db"), p.DB)
	assert.Equal(t, filepath.Join("/project", ".reviewbot.yaml"), p.Config)
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	p := NewPaths(dir)

	require.NoError(t, p.EnsureDirs())
	info, err := os.Stat(p.Root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second call is idempotent.
	require.NoError(t, p.EnsureDirs())
}

func TestRemoveCache(t *testing.T) {
	p := NewPaths(t.TempDir())
	require.NoError(t, p.RemoveCache(), "missing cache is fine")

	require.NoError(t, p.EnsureDirs())
	require.NoError(t, os.WriteFile(p.DB, []byte("x"), 0644))
	require.NoError(t, p.RemoveCache())
	_, err := os.Stat(p.DB)
	assert.True(t, os.IsNotExist(err))
}
