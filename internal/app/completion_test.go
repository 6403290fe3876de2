package app

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	"github.com/felixgeelhaar/scripthost/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompleter(t *testing.T) (*Completer, *fixture) {
	t.Helper()

	f := newFixture(t)
	f.fs.AddFile(testUserDir+"/foo.lua", "")
	f.fs.AddFile(testUserDir+"/fizz.lua", "")
	f.fs.AddFile(testUserDir+"/.hidden.lua", "")
	f.fs.AddDir(testUserDir + "/friends")
	f.fs.AddFile(testUserDir+"/friends/fred.lua", "")
	f.fs.AddFile(testSystemDir+"/foo.lua", "")
	f.fs.AddFile(testSystemDir+"/format.lua", "")
	f.fs.AddFile(testSystemDir+"/bar.lua", "")

	return NewCompleter(f.fs, f.manager.Resolver(), f.manager.Registry()), f
}

func TestCompleter_CompleteLoad(t *testing.T) {
	t.Parallel()

	c, _ := newCompleter(t)

	tests := []struct {
		name string
		word string
		rest string
		want []string
	}{
		{name: "user matches first", word: "f", want: []string{"fizz.lua", "foo.lua", "friends/", "foo.lua", "format.lua"}},
		{name: "narrow prefix", word: "fo", want: []string{"foo.lua", "foo.lua", "format.lua"}},
		{name: "system only", word: "ba", want: []string{"bar.lua"}},
		{name: "into subdirectory", word: "friends/fr", want: []string{"friends/fred.lua"}},
		{name: "hidden on request", word: ".h", want: []string{".hidden.lua"}},
		{name: "no match", word: "zzz", want: nil},
		{name: "trailing arguments", word: "fo", rest: " extra", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.CompleteLoad(tt.word, tt.rest))
		})
	}
}

func TestCompleter_CompleteLoadAbsolute(t *testing.T) {
	t.Parallel()

	c, f := newCompleter(t)
	f.fs.AddFile("/opt/extra/one.lua", "")
	f.fs.AddFile("/opt/extra/other.lua", "")

	assert.Equal(t, []string{"/opt/extra/one.lua", "/opt/extra/other.lua"}, c.CompleteLoad("/opt/extra/o", ""))
	assert.Nil(t, c.CompleteLoad("/missing/dir/x", ""))
}

func TestCompleter_CompleteUnload(t *testing.T) {
	t.Parallel()

	c, f := newCompleter(t)
	ctx := context.Background()
	for _, name := range []string{"foo", "foobar", "bar"} {
		_, err := f.manager.LoadText(ctx, name, "x", true)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"foo", "foobar"}, c.CompleteUnload("fo", ""))
	assert.Empty(t, c.CompleteUnload("fo", "trailing"))
	assert.Equal(t, []string{"foo", "foobar", "bar"}, c.CompleteUnload("", ""))
	assert.Empty(t, c.CompleteUnload("zzz", ""))
}

func TestCompleter_SkipsUnsetDirectories(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile(testSystemDir+"/only.lua", "")
	resolver := script.NewResolver(fs, "", testSystemDir, ".lua")
	c := NewCompleter(fs, resolver, script.NewRegistry())

	assert.Equal(t, []string{"only.lua"}, c.CompleteLoad("o", ""))
}
