package lua

import (
	"bytes"
	"context"
	"testing"

	"github.com/felixgeelhaar/scripthost/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpreter_Metadata(t *testing.T) {
	t.Parallel()

	interp := New(nil)
	assert.Equal(t, "lua", interp.Name())
	assert.Equal(t, ".lua", interp.Extension())
}

func TestInterpreter_RunsMainChunk(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	interp := New(&out)

	h, err := interp.CompileAndRun(context.Background(), "hello", `print("hi from", SCRIPT_NAME, 1 + 2)`)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "hi from\thello\t3\n", out.String())
}

func TestInterpreter_SyntaxError(t *testing.T) {
	t.Parallel()

	interp := New(nil)

	h, err := interp.CompileAndRun(context.Background(), "broken", "function (")
	require.Error(t, err)
	assert.Nil(t, h)
	assert.NotEmpty(t, err.Error())
}

func TestInterpreter_RuntimeError(t *testing.T) {
	t.Parallel()

	interp := New(nil)

	_, err := interp.CompileAndRun(context.Background(), "boom", `error("boom happened")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom happened")
}

func TestInterpreter_ReleaseCallsUnload(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	interp := New(&out)

	h, err := interp.CompileAndRun(context.Background(), "greeter", `
function unload()
  print("bye " .. SCRIPT_NAME)
end
`)
	require.NoError(t, err)
	assert.Empty(t, out.String())

	require.NoError(t, interp.Release(context.Background(), h))
	assert.Equal(t, "bye greeter\n", out.String())

	// A released handle cannot be released again.
	assert.ErrorIs(t, interp.Release(context.Background(), h), ErrForeignHandle)
}

func TestInterpreter_ReleaseWithoutUnload(t *testing.T) {
	t.Parallel()

	interp := New(nil)

	h, err := interp.CompileAndRun(context.Background(), "plain", `x = 1`)
	require.NoError(t, err)
	assert.NoError(t, interp.Release(context.Background(), h))
}

func TestInterpreter_ReleaseReportsUnloadError(t *testing.T) {
	t.Parallel()

	interp := New(nil)

	h, err := interp.CompileAndRun(context.Background(), "grumpy", `function unload() error("refusing") end`)
	require.NoError(t, err)

	err = interp.Release(context.Background(), h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing")
}

func TestInterpreter_ScriptsAreIsolated(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	interp := New(&out)

	_, err := interp.CompileAndRun(context.Background(), "a", `shared = "from a"`)
	require.NoError(t, err)
	_, err = interp.CompileAndRun(context.Background(), "b", `print(shared)`)
	require.NoError(t, err)

	assert.Equal(t, "nil\n", out.String())
}

func TestInterpreter_ForeignHandle(t *testing.T) {
	t.Parallel()

	interp := New(nil)
	assert.ErrorIs(t, interp.Release(context.Background(), &mocks.InterpreterHandle{}), ErrForeignHandle)
}
