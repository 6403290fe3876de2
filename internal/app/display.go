package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	"github.com/felixgeelhaar/scripthost/internal/tui/ui"
)

// User-visible messages.
const (
	msgNoScripts  = "No scripts loaded"
	msgListHeader = "Loaded scripts:"
)

// Display renders listings and status lines, and prints notifications
// delivered through the event bus.
type Display struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	styles  ui.Styles
	verbose bool
}

// DisplayOption configures a Display.
type DisplayOption func(*Display)

// WithStyles sets the styles used for rendering.
func WithStyles(styles ui.Styles) DisplayOption {
	return func(d *Display) {
		d.styles = styles
	}
}

// WithVerbose makes the display also report unloads.
func WithVerbose(verbose bool) DisplayOption {
	return func(d *Display) {
		d.verbose = verbose
	}
}

// WithErrorOutput sends load errors and failures to w instead of the main output.
func WithErrorOutput(w io.Writer) DisplayOption {
	return func(d *Display) {
		if w != nil {
			d.errOut = w
		}
	}
}

// NewDisplay creates a display writing to out. Styles default to plain text.
func NewDisplay(out io.Writer, opts ...DisplayOption) *Display {
	d := &Display{
		out:    out,
		errOut: out,
		styles: ui.PlainStyles(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Descriptor returns what a listing shows next to a script's name.
func Descriptor(rec *script.Record) string {
	return rec.Descriptor()
}

// FormatList renders records as the listing text.
func FormatList(styles ui.Styles, records []*script.Record) string {
	if len(records) == 0 {
		return styles.Muted.Render(msgNoScripts) + "\n"
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render(msgListHeader))
	b.WriteString("\n")
	for _, rec := range records {
		name := fmt.Sprintf("%-*s", ui.NameColumnWidth, rec.Name)
		fmt.Fprintf(&b, "%s %s\n", styles.Name.Render(name), styles.Descriptor.Render(Descriptor(rec)))
	}
	b.WriteString(styles.Footer.Render(fmt.Sprintf("%d script(s)", len(records))))
	b.WriteString("\n")
	return b.String()
}

// RenderList writes the listing of records.
func (d *Display) RenderList(records []*script.Record) {
	d.write(FormatList(d.styles, records))
}

// Loaded reports a successful file load.
func (d *Display) Loaded(name, path string) {
	d.write(d.styles.Success.Render(LoadedMessage(name, path)) + "\n")
}

// Unloaded reports an explicit unload.
func (d *Display) Unloaded(name string) {
	d.write(d.styles.Success.Render(UnloadedMessage(name)) + "\n")
}

// Error reports a failed operation.
func (d *Display) Error(err error) {
	d.writeTo(d.errOut, d.styles.Error.Render(ErrorMessage(err))+"\n")
}

// Notify implements script.Subscriber. Load errors are always printed with
// the interpreter message verbatim on its own line; unloads only when verbose.
func (d *Display) Notify(_ context.Context, event script.Event) {
	switch e := event.(type) {
	case script.ScriptLoadError:
		d.writeTo(d.errOut, d.styles.Error.Render(fmt.Sprintf("Script %s failed to load", e.Name))+"\n"+e.Message+"\n")
	case script.ScriptUnloaded:
		if d.verbose {
			d.write(d.styles.Muted.Render(UnloadedMessage(e.Name)) + "\n")
		}
	}
}

func (d *Display) write(s string) {
	d.writeTo(d.out, s)
}

func (d *Display) writeTo(w io.Writer, s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = io.WriteString(w, s)
}

// LoadedMessage is the confirmation printed after a file load.
func LoadedMessage(name, path string) string {
	if path == "" {
		return fmt.Sprintf("Loaded script %s", name)
	}
	return fmt.Sprintf("Loaded script %s (%s)", name, path)
}

// UnloadedMessage is the confirmation printed after an unload.
func UnloadedMessage(name string) string {
	return fmt.Sprintf("Unloaded script %s", name)
}

// ErrorMessage converts an operation error into the line shown to the user.
func ErrorMessage(err error) string {
	var nf *script.NotFoundError
	var nl *script.NotLoadedError
	var le *script.LoadError
	switch {
	case errors.As(err, &nf):
		return fmt.Sprintf("Script %s not found", nf.Name)
	case errors.As(err, &nl):
		return fmt.Sprintf("Script %s is not loaded", nl.Name)
	case errors.As(err, &le):
		return fmt.Sprintf("Script %s failed to load: %s", le.Name, le.Message)
	default:
		return err.Error()
	}
}

var _ script.Subscriber = (*Display)(nil)

// AlreadyReported reports whether err reached the user through the Display
// subscriber, so front ends that subscribe one should not print it again.
func AlreadyReported(err error) bool {
	return script.IsLoadError(err)
}
