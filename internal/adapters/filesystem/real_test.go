package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/scripthost/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRealFileSystem(t *testing.T) {
	fs := NewRealFileSystem()
	if fs == nil {
		t.Error("NewRealFileSystem() should not return nil")
	}
}

func TestRealFileSystem_Integration(t *testing.T) {
	t.Parallel()

	fs := NewRealFileSystem()
	dir := t.TempDir()

	file := filepath.Join(dir, "hello.lua")
	require.NoError(t, os.WriteFile(file, []byte("print('hi')"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "autorun"), 0o755))

	content, err := fs.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", string(content))

	assert.True(t, fs.IsFile(file))
	assert.False(t, fs.IsDir(file))
	assert.True(t, fs.IsDir(filepath.Join(dir, "autorun")))
	assert.False(t, fs.IsFile(filepath.Join(dir, "autorun")))
	assert.False(t, fs.IsFile(filepath.Join(dir, "missing.lua")))

	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []ports.DirEntry{
		{Name: "autorun", IsDir: true},
		{Name: "hello.lua"},
	}, entries)
}

func TestRealFileSystem_ReadDirFollowsSymlinkedDirs(t *testing.T) {
	t.Parallel()

	fs := NewRealFileSystem()
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(target, 0o755))
	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []ports.DirEntry{
		{Name: "link", IsDir: true},
		{Name: "real", IsDir: true},
	}, entries)
}

func TestRealFileSystem_ReadDirMissing(t *testing.T) {
	t.Parallel()

	_, err := NewRealFileSystem().ReadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
