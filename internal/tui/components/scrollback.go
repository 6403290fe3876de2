// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// DefaultMaxLines bounds how many lines a Scrollback keeps.
const DefaultMaxLines = 1000

// Scrollback is the shell's output area: an append-only list of lines
// shown through a viewport that follows the newest line.
type Scrollback struct {
	lines    []string
	maxLines int
	viewport viewport.Model
}

// NewScrollback creates a scrollback with the given size.
func NewScrollback(width, height int) Scrollback {
	return Scrollback{
		maxLines: DefaultMaxLines,
		viewport: viewport.New(width, height),
	}
}

// WithSize returns the scrollback resized.
func (s Scrollback) WithSize(width, height int) Scrollback {
	if height < 1 {
		height = 1
	}
	s.viewport.Width = width
	s.viewport.Height = height
	return s.refresh()
}

// WithMaxLines returns the scrollback with a new line limit.
func (s Scrollback) WithMaxLines(n int) Scrollback {
	if n > 0 {
		s.maxLines = n
	}
	return s.trim().refresh()
}

// Append adds text to the end. Multi-line text is split, and one trailing
// newline is dropped so that printed output does not leave blank lines.
func (s Scrollback) Append(text string) Scrollback {
	text = strings.TrimSuffix(text, "\n")
	s.lines = append(s.lines[:len(s.lines):len(s.lines)], strings.Split(text, "\n")...)
	return s.trim().refresh()
}

// Clear removes every line.
func (s Scrollback) Clear() Scrollback {
	s.lines = nil
	return s.refresh()
}

// Lines returns the retained lines.
func (s Scrollback) Lines() []string {
	return append([]string(nil), s.lines...)
}

// Width returns the viewport width.
func (s Scrollback) Width() int {
	return s.viewport.Width
}

// Height returns the viewport height.
func (s Scrollback) Height() int {
	return s.viewport.Height
}

// AtBottom reports whether the newest line is visible.
func (s Scrollback) AtBottom() bool {
	return s.viewport.AtBottom()
}

// PageUp scrolls one page towards older output.
func (s Scrollback) PageUp() Scrollback {
	s.viewport.ViewUp()
	return s
}

// PageDown scrolls one page towards newer output.
func (s Scrollback) PageDown() Scrollback {
	s.viewport.ViewDown()
	return s
}

// View renders the visible lines.
func (s Scrollback) View() string {
	return s.viewport.View()
}

func (s Scrollback) trim() Scrollback {
	if over := len(s.lines) - s.maxLines; over > 0 {
		s.lines = s.lines[over:]
	}
	return s
}

func (s Scrollback) refresh() Scrollback {
	s.viewport.SetContent(strings.Join(s.lines, "\n"))
	s.viewport.GotoBottom()
	return s
}
