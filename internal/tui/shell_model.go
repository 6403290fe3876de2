package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/felixgeelhaar/scripthost/internal/app"
	"github.com/felixgeelhaar/scripthost/internal/tui/components"
	"github.com/felixgeelhaar/scripthost/internal/tui/ui"
)

const (
	promptText = "> "
	// chromeHeight is the number of rows used by the input and help lines.
	chromeHeight = 2
)

var usageLines = []string{
	"script exec [-permanent] [-name NAME] <code>",
	"script load <name|path>",
	"script unload <name>",
	"script flush",
	"script list",
	"clear, help, exit",
}

// shellModel implements the interactive shell.
type shellModel struct {
	ctx        context.Context
	dispatcher *app.Dispatcher
	completer  *app.Completer
	out        *Output
	styles     ui.Styles
	keys       ui.KeyMap
	help       help.Model
	input      textinput.Model
	scrollback components.Scrollback
	width      int
	height     int

	history  []string
	histPos  int
	commands int
	quitting bool
}

func newShellModel(ctx context.Context, opts ShellOptions) shellModel {
	input := textinput.New()
	input.Prompt = opts.Styles.Prompt.Render(promptText)
	input.Placeholder = "script list"
	input.Focus()

	m := shellModel{
		ctx:        ctx,
		dispatcher: opts.Dispatcher,
		completer:  opts.Completer,
		out:        opts.Output,
		styles:     opts.Styles,
		keys:       ui.DefaultKeyMap(),
		help:       help.New(),
		input:      input,
		width:      80,
		height:     24,
	}
	m.scrollback = components.NewScrollback(m.width, m.height-chromeHeight)
	if opts.Title != "" {
		m.scrollback = m.scrollback.Append(opts.Styles.Header.Render(opts.Title))
	}
	// Autoload output produced before the shell started.
	m = m.flushOutput()
	return m
}

func (m shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(promptText) - 1
		m.help.Width = msg.Width
		m.scrollback = m.scrollback.WithSize(msg.Width, msg.Height-chromeHeight)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Complete):
		return m.complete(), nil

	case key.Matches(msg, m.keys.HistoryPrev):
		return m.historyStep(-1), nil

	case key.Matches(msg, m.keys.HistoryNext):
		return m.historyStep(1), nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollback = m.scrollback.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollback = m.scrollback.PageDown()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.scrollback = m.scrollback.Clear()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	m.history = append(m.history, line)
	m.histPos = len(m.history)
	m.scrollback = m.scrollback.Append(m.styles.Echo.Render(promptText + line))

	switch line {
	case "exit", "quit":
		m.quitting = true
		return m, tea.Quit
	case "clear":
		m.scrollback = m.scrollback.Clear()
		return m, nil
	case "help":
		for _, usage := range usageLines {
			m.scrollback = m.scrollback.Append(m.styles.Muted.Render(usage))
		}
		return m, nil
	}

	m.commands++
	err := m.dispatcher.RunLine(m.ctx, line, m.out)
	m = m.flushOutput()
	if err != nil && !app.AlreadyReported(err) {
		m.scrollback = m.scrollback.Append(m.styles.Error.Render(app.ErrorMessage(err)))
	}
	return m, nil
}

// complete handles Tab. A single candidate replaces the word under the
// cursor; several are listed and the word grows to their common prefix.
func (m shellModel) complete() shellModel {
	value := m.input.Value()
	head, word := splitLastWord(value)
	candidates := m.candidates(head, word)

	switch len(candidates) {
	case 0:
		return m
	case 1:
		completed := candidates[0]
		if !strings.HasSuffix(completed, "/") {
			completed += " "
		}
		m.input.SetValue(head + completed)
	default:
		m.scrollback = m.scrollback.Append(m.styles.Muted.Render(strings.Join(candidates, "  ")))
		if prefix := commonPrefix(candidates); len(prefix) > len(word) {
			m.input.SetValue(head + prefix)
		}
	}
	m.input.CursorEnd()
	return m
}

// candidates returns completions for word given the text before it.
func (m shellModel) candidates(head, word string) []string {
	fields := strings.Fields(head)
	if len(fields) > 0 {
		if first := strings.ToLower(fields[0]); first == "script" || first == "/script" {
			fields = fields[1:]
		}
	}

	switch len(fields) {
	case 0:
		var out []string
		for _, sub := range app.Subcommands {
			if strings.HasPrefix(sub, strings.ToLower(word)) {
				out = append(out, sub)
			}
		}
		return out
	case 1:
		switch strings.ToLower(fields[0]) {
		case app.SubcommandLoad:
			return m.completer.CompleteLoad(word, "")
		case app.SubcommandUnload:
			return m.completer.CompleteUnload(word, "")
		}
	}
	return nil
}

func (m shellModel) historyStep(delta int) shellModel {
	if len(m.history) == 0 {
		return m
	}
	pos := m.histPos + delta
	switch {
	case pos < 0:
		pos = 0
	case pos >= len(m.history):
		m.histPos = len(m.history)
		m.input.SetValue("")
		return m
	}
	m.histPos = pos
	m.input.SetValue(m.history[pos])
	m.input.CursorEnd()
	return m
}

func (m shellModel) flushOutput() shellModel {
	if m.out == nil {
		return m
	}
	if text := m.out.Drain(); text != "" {
		m.scrollback = m.scrollback.Append(text)
	}
	return m
}

func (m shellModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.scrollback.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// splitLastWord splits s before its last space-separated word.
func splitLastWord(s string) (head, word string) {
	i := strings.LastIndexAny(s, " \t")
	return s[:i+1], s[i+1:]
}

func commonPrefix(words []string) string {
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
