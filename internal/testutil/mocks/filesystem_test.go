package mocks

import (
	"testing"

	"github.com/felixgeelhaar/scripthost/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_AddFileCreatesParents(t *testing.T) {
	t.Parallel()

	fs := NewFileSystem()
	fs.AddFile("/home/u/scripts/hello.lua", "print('hi')")

	assert.True(t, fs.IsFile("/home/u/scripts/hello.lua"))
	assert.True(t, fs.IsDir("/home/u/scripts"))
	assert.True(t, fs.IsDir("/home"))
	assert.False(t, fs.IsFile("/home/u/scripts"))

	data, err := fs.ReadFile("/home/u/scripts/hello.lua")
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", string(data))
}

func TestFileSystem_ReadDir(t *testing.T) {
	t.Parallel()

	fs := NewFileSystem()
	fs.AddFile("/s/b.lua", "")
	fs.AddFile("/s/a.lua", "")
	fs.AddFile("/s/autorun/x.lua", "")
	fs.AddDir("/s/empty")

	entries, err := fs.ReadDir("/s")
	require.NoError(t, err)
	assert.Equal(t, []ports.DirEntry{
		{Name: "a.lua"},
		{Name: "autorun", IsDir: true},
		{Name: "b.lua"},
		{Name: "empty", IsDir: true},
	}, entries)

	_, err = fs.ReadDir("/missing")
	assert.Error(t, err)
}

func TestFileSystem_Remove(t *testing.T) {
	t.Parallel()

	fs := NewFileSystem()
	fs.AddFile("/s/a.lua", "x")
	fs.Remove("/s/a.lua")

	assert.False(t, fs.IsFile("/s/a.lua"))
	_, err := fs.ReadFile("/s/a.lua")
	assert.Error(t, err)
}
