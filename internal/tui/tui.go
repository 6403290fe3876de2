// Package tui provides the interactive script shell.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/felixgeelhaar/scripthost/internal/app"
	"github.com/felixgeelhaar/scripthost/internal/tui/ui"
)

// Output buffers what the host writes between two shell commands. Pass it
// as the host's output writer; the shell moves its contents into the
// scrollback after each command.
type Output struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (o *Output) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.Write(p)
}

// Drain returns and clears the buffered output.
func (o *Output) Drain() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.buf.String()
	o.buf.Reset()
	return s
}

// ShellOptions configures the interactive shell.
type ShellOptions struct {
	Dispatcher *app.Dispatcher
	Completer  *app.Completer
	// Output must be the writer the host was built with.
	Output *Output
	Styles ui.Styles
	// Title is shown as the first scrollback line.
	Title string
}

// NewShellOptions creates shell options for a wired host.
func NewShellOptions(host *app.Host, out *Output) ShellOptions {
	return ShellOptions{
		Dispatcher: host.Dispatcher,
		Completer:  host.Completer,
		Output:     out,
		Styles:     ui.DefaultStyles(),
	}
}

// WithTitle sets the first scrollback line.
func (o ShellOptions) WithTitle(title string) ShellOptions {
	o.Title = title
	return o
}

// WithStyles sets the shell styles.
func (o ShellOptions) WithStyles(styles ui.Styles) ShellOptions {
	o.Styles = styles
	return o
}

// ShellResult is returned when the shell exits.
type ShellResult struct {
	// Commands is the number of lines that were dispatched.
	Commands int
	History  []string
}

// RunShell runs the interactive shell until the user quits.
func RunShell(ctx context.Context, opts ShellOptions) (*ShellResult, error) {
	if opts.Dispatcher == nil || opts.Completer == nil {
		return nil, fmt.Errorf("shell requires a dispatcher and a completer")
	}
	if opts.Output == nil {
		opts.Output = &Output{}
	}

	model := newShellModel(ctx, opts)

	p := tea.NewProgram(model, tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("shell failed: %w", err)
	}

	m, ok := finalModel.(shellModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}

	return &ShellResult{
		Commands: m.commands,
		History:  append([]string(nil), m.history...),
	}, nil
}
