package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpreter_CompileAndRelease(t *testing.T) {
	t.Parallel()

	interp := NewInterpreter(".lua")
	ctx := context.Background()

	h, err := interp.CompileAndRun(ctx, "hello", "print(1)")
	require.NoError(t, err)

	handle, ok := h.(*InterpreterHandle)
	require.True(t, ok)
	assert.Equal(t, "hello", handle.Name)

	require.NoError(t, interp.Release(ctx, h))
	assert.Equal(t, 1, interp.ReleaseCount(handle.ID))
	assert.Equal(t, []string{"hello"}, interp.ReleasedNames())
	assert.Len(t, interp.Compiled(), 1)
}

func TestInterpreter_FailMarker(t *testing.T) {
	t.Parallel()

	interp := NewInterpreter(".lua")

	_, err := interp.CompileAndRun(context.Background(), "bad", "x = 1\nFAIL unexpected symbol\nmore")
	require.Error(t, err)
	assert.Equal(t, "unexpected symbol", err.Error())
	assert.Empty(t, interp.Compiled())
}

func TestInterpreter_ForeignHandle(t *testing.T) {
	t.Parallel()

	interp := NewInterpreter(".lua")
	assert.Error(t, interp.Release(context.Background(), "not-a-handle"))
}
