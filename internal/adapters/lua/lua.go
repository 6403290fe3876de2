// Package lua implements script.Interpreter on top of Shopify/go-lua.
// Every loaded script runs in its own Lua state.
package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	golua "github.com/Shopify/go-lua"
	"github.com/felixgeelhaar/scripthost/internal/domain/script"
)

// Extension is the file extension of Lua scripts.
const Extension = ".lua"

// unloadHook is the global a script may define to run when it is unloaded.
const unloadHook = "unload"

// ErrForeignHandle is returned when Release receives a handle it did not create.
var ErrForeignHandle = errors.New("handle was not created by the lua interpreter")

// Interpreter runs Lua scripts.
type Interpreter struct {
	out io.Writer
}

// New creates a Lua interpreter whose print function writes to out.
func New(out io.Writer) *Interpreter {
	if out == nil {
		out = io.Discard
	}
	return &Interpreter{out: out}
}

type handle struct {
	name  string
	state *golua.State
}

// Name implements script.Interpreter.
func (i *Interpreter) Name() string {
	return "lua"
}

// Extension implements script.Interpreter.
func (i *Interpreter) Extension() string {
	return Extension
}

// CompileAndRun loads source into a fresh state and runs its main chunk.
func (i *Interpreter) CompileAndRun(_ context.Context, name, source string) (script.Handle, error) {
	l := golua.NewState()
	golua.OpenLibraries(l)
	l.Register("print", i.print)
	l.PushString(name)
	l.SetGlobal("SCRIPT_NAME")

	if err := golua.LoadBuffer(l, source, "="+name, ""); err != nil {
		return nil, errors.New(errorMessage(l, err))
	}
	if err := l.ProtectedCall(0, 0, 0); err != nil {
		return nil, errors.New(errorMessage(l, err))
	}

	return &handle{name: name, state: l}, nil
}

// Release calls the script's unload function, if it defines one, and drops the state.
func (i *Interpreter) Release(_ context.Context, h script.Handle) error {
	lh, ok := h.(*handle)
	if !ok || lh.state == nil {
		return ErrForeignHandle
	}
	l := lh.state
	lh.state = nil

	l.Global(unloadHook)
	if !l.IsFunction(-1) {
		l.Pop(1)
		return nil
	}
	if err := l.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("%s: %s", lh.name, errorMessage(l, err))
	}
	return nil
}

func (i *Interpreter) print(l *golua.State) int {
	n := l.Top()
	parts := make([]string, 0, n)
	for idx := 1; idx <= n; idx++ {
		s, _ := golua.ToStringMeta(l, idx)
		l.Pop(1)
		parts = append(parts, s)
	}
	_, _ = fmt.Fprintln(i.out, strings.Join(parts, "\t"))
	return 0
}

// errorMessage prefers the error value Lua left on the stack.
func errorMessage(l *golua.State, err error) string {
	if msg, ok := l.ToString(-1); ok && msg != "" {
		l.Pop(1)
		return msg
	}
	return err.Error()
}

var _ script.Interpreter = (*Interpreter)(nil)
