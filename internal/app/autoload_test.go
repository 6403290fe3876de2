package app

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/scripthost/internal/adapters/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoloader_Run(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	autorun := testUserDir + "/autorun"
	f.fs.AddFile(autorun+"/b.lua", "b")
	f.fs.AddFile(autorun+"/a.lua", "a")
	f.fs.AddFile(autorun+"/broken.lua", "FAIL oops")
	f.fs.AddFile(autorun+"/notes.txt", "ignored")
	f.fs.AddFile(autorun+"/.swap.lua", "ignored")
	f.fs.AddDir(autorun + "/nested.lua")

	a := NewAutoloader(f.fs, f.manager, testUserDir, logging.NewNopLogger())
	assert.Equal(t, autorun, a.Dir())

	result, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, result.Loaded)
	assert.Equal(t, []string{"broken.lua"}, result.Failed)
	assert.Equal(t, []string{"a", "b"}, f.manager.Registry().FindByPrefix(""))
}

func TestAutoloader_MissingDirectory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	a := NewAutoloader(f.fs, f.manager, testUserDir, logging.NewNopLogger())

	result, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Loaded)

	disabled := NewAutoloader(f.fs, f.manager, "", logging.NewNopLogger())
	assert.Empty(t, disabled.Dir())
	_, err = disabled.Run(context.Background())
	assert.NoError(t, err)
}

func TestAutoloader_HookReloadsAfterFlush(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.fs.AddFile(testUserDir+"/autorun/boot.lua", "boot")
	a := NewAutoloader(f.fs, f.manager, testUserDir, logging.NewNopLogger())
	f.manager.SetStartupHook(a.Hook())
	ctx := context.Background()

	_, err := f.manager.LoadText(ctx, "manual", "x", true)
	require.NoError(t, err)

	require.NoError(t, f.manager.Flush(ctx))
	assert.Equal(t, []string{"boot"}, f.manager.Registry().FindByPrefix(""))
}
