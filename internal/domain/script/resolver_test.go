package script_test

import (
	"testing"

	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	"github.com/felixgeelhaar/scripthost/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userDir   = "/home/u/.scripthost/scripts"
	systemDir = "/usr/share/scripthost/scripts"
)

func TestResolver_UserOverridesSystem(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile(userDir+"/foo.lua", "-- user")
	fs.AddFile(systemDir+"/foo.lua", "-- system")
	fs.AddFile(systemDir+"/bar.lua", "-- system only")

	r := script.NewResolver(fs, userDir, systemDir, ".lua")

	path, err := r.Resolve("foo")
	require.NoError(t, err)
	assert.Equal(t, userDir+"/foo.lua", path)

	path, err = r.Resolve("bar")
	require.NoError(t, err)
	assert.Equal(t, systemDir+"/bar.lua", path)
}

func TestResolver_NotFound(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile(userDir+"/foo.sh", "")
	fs.AddDir(userDir + "/dir.lua")

	r := script.NewResolver(fs, userDir, systemDir, ".lua")

	for _, name := range []string{"missing", "foo", "dir", ""} {
		_, err := r.Resolve(name)
		require.Error(t, err, name)
		assert.True(t, script.IsNotFound(err), name)
	}
}

func TestResolver_AcceptsExtension(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile(userDir+"/foo.lua", "")

	r := script.NewResolver(fs, userDir, systemDir, ".lua")

	path, err := r.Resolve("foo.lua")
	require.NoError(t, err)
	assert.Equal(t, userDir+"/foo.lua", path)
}

func TestResolver_Dirs(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()

	assert.Equal(t, []string{userDir, systemDir}, script.NewResolver(fs, userDir, systemDir, ".lua").Dirs())
	assert.Equal(t, []string{systemDir}, script.NewResolver(fs, "", systemDir, ".lua").Dirs())
	assert.Equal(t, ".sh", script.NewResolver(fs, "", "", ".sh").Extension())
}

func TestIsPathLike(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"/abs/foo.lua": true,
		"~/foo.lua":    true,
		"./foo.lua":    true,
		"sub/foo":      true,
		"foo":          false,
		"foo.lua":      false,
	}
	for in, want := range tests {
		assert.Equal(t, want, script.IsPathLike(in), in)
	}
}
