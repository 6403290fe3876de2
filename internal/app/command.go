package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/felixgeelhaar/scripthost/internal/tui/ui"
	"mvdan.cc/sh/v3/shell"
)

// Input error reasons.
var (
	ErrMissingSubcommand = errors.New("missing subcommand")
	ErrUnknownSubcommand = errors.New("unknown subcommand")
	ErrNotEnoughParams   = errors.New("not enough parameters given")
	ErrTooManyParams     = errors.New("too many parameters given")
	ErrUnknownOption     = errors.New("unknown option")
	ErrInvalidArguments  = errors.New("invalid arguments")
)

// InputError is a malformed command line. Nothing is executed when parsing fails.
type InputError struct {
	Command string
	Reason  error
	Detail  string
}

func (e *InputError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Command, e.Reason, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Reason
}

// IsInputError returns true if err is an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// Subcommand names.
const (
	SubcommandExec   = "exec"
	SubcommandLoad   = "load"
	SubcommandUnload = "unload"
	SubcommandFlush  = "flush"
	SubcommandList   = "list"
)

// Subcommands lists every subcommand in help order.
var Subcommands = []string{SubcommandExec, SubcommandLoad, SubcommandUnload, SubcommandFlush, SubcommandList}

// Command is one parsed script subcommand. The set of implementations is closed.
type Command interface {
	Subcommand() string
	isCommand()
}

// ExecCommand runs inline code, unloading it afterwards unless Permanent.
type ExecCommand struct {
	Code      string
	Permanent bool
	Name      string
}

// LoadCommand loads a script by name or path.
type LoadCommand struct {
	Target string
}

// UnloadCommand unloads an active script.
type UnloadCommand struct {
	Name string
}

// FlushCommand unloads everything and reruns autoload.
type FlushCommand struct{}

// ListCommand lists active scripts.
type ListCommand struct{}

func (ExecCommand) Subcommand() string   { return SubcommandExec }
func (LoadCommand) Subcommand() string   { return SubcommandLoad }
func (UnloadCommand) Subcommand() string { return SubcommandUnload }
func (FlushCommand) Subcommand() string  { return SubcommandFlush }
func (ListCommand) Subcommand() string   { return SubcommandList }

func (ExecCommand) isCommand()   {}
func (LoadCommand) isCommand()   {}
func (UnloadCommand) isCommand() {}
func (FlushCommand) isCommand()  {}
func (ListCommand) isCommand()   {}

// ParseCommand parses one line of input such as "script load foo".
// The leading "script" (or "/script") may be omitted. Exec code is the raw
// remainder of the line after its options; load and unload arguments follow
// shell quoting rules.
func ParseCommand(line string) (Command, error) {
	word, rest := nextWord(line)
	if strings.EqualFold(word, "script") || strings.EqualFold(word, "/script") {
		word, rest = nextWord(rest)
	}
	if word == "" {
		return nil, &InputError{Command: "script", Reason: ErrMissingSubcommand}
	}

	sub := strings.ToLower(word)
	cmdName := "script " + sub
	switch sub {
	case SubcommandExec:
		return parseExec(cmdName, rest)
	case SubcommandLoad:
		arg, err := singleArgument(cmdName, rest)
		if err != nil {
			return nil, err
		}
		return LoadCommand{Target: arg}, nil
	case SubcommandUnload:
		arg, err := singleArgument(cmdName, rest)
		if err != nil {
			return nil, err
		}
		return UnloadCommand{Name: arg}, nil
	case SubcommandFlush:
		if err := noArguments(cmdName, rest); err != nil {
			return nil, err
		}
		return FlushCommand{}, nil
	case SubcommandList:
		if err := noArguments(cmdName, rest); err != nil {
			return nil, err
		}
		return ListCommand{}, nil
	default:
		return nil, &InputError{Command: "script", Reason: ErrUnknownSubcommand, Detail: word}
	}
}

func parseExec(cmdName, rest string) (Command, error) {
	cmd := ExecCommand{}
	for {
		word, after := nextWord(rest)
		if !strings.HasPrefix(word, "-") {
			break
		}
		rest = after
		opt := strings.TrimLeft(word, "-")
		if opt == "" {
			// "-" or "--" ends the options.
			break
		}
		switch strings.ToLower(opt) {
		case "permanent":
			cmd.Permanent = true
		case "name":
			var name string
			name, rest = nextWord(rest)
			if name == "" {
				return nil, &InputError{Command: cmdName, Reason: ErrNotEnoughParams, Detail: "-name needs a value"}
			}
			cmd.Name = name
		default:
			return nil, &InputError{Command: cmdName, Reason: ErrUnknownOption, Detail: word}
		}
	}

	cmd.Code = strings.TrimSpace(rest)
	if cmd.Code == "" {
		return nil, &InputError{Command: cmdName, Reason: ErrNotEnoughParams}
	}
	return cmd, nil
}

func singleArgument(cmdName, rest string) (string, error) {
	args, err := shell.Fields(rest, nil)
	if err != nil {
		return "", &InputError{Command: cmdName, Reason: ErrInvalidArguments, Detail: err.Error()}
	}
	switch len(args) {
	case 0:
		return "", &InputError{Command: cmdName, Reason: ErrNotEnoughParams}
	case 1:
		return args[0], nil
	default:
		return "", &InputError{Command: cmdName, Reason: ErrTooManyParams, Detail: strings.Join(args[1:], " ")}
	}
}

func noArguments(cmdName, rest string) error {
	if extra := strings.TrimSpace(rest); extra != "" {
		return &InputError{Command: cmdName, Reason: ErrTooManyParams, Detail: extra}
	}
	return nil
}

// nextWord splits off the first whitespace-delimited word of s.
func nextWord(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// Dispatcher runs parsed commands against a Manager.
type Dispatcher struct {
	manager *Manager
	styles  ui.Styles
}

// NewDispatcher creates a dispatcher rendering with plain styles.
func NewDispatcher(manager *Manager) *Dispatcher {
	return &Dispatcher{manager: manager, styles: ui.PlainStyles()}
}

// WithStyles returns a copy of the dispatcher rendering with styles.
func (d *Dispatcher) WithStyles(styles ui.Styles) *Dispatcher {
	cp := *d
	cp.styles = styles
	return &cp
}

// Manager returns the manager commands run against.
func (d *Dispatcher) Manager() *Manager {
	return d.manager
}

// Run executes cmd and writes its confirmation to w. Errors are returned
// unprinted; see ErrorMessage and AlreadyReported.
func (d *Dispatcher) Run(ctx context.Context, cmd Command, w io.Writer) error {
	switch c := cmd.(type) {
	case ExecCommand:
		rec, err := d.manager.LoadText(ctx, c.Name, c.Code, c.Permanent)
		if err != nil {
			return err
		}
		if c.Permanent {
			d.println(w, d.styles.Success.Render(LoadedMessage(rec.Name, "")))
		}
	case LoadCommand:
		rec, err := d.manager.LoadByName(ctx, c.Target)
		if err != nil {
			return err
		}
		d.println(w, d.styles.Success.Render(LoadedMessage(rec.Name, rec.Path)))
	case UnloadCommand:
		rec, err := d.manager.Unload(ctx, c.Name)
		if err != nil {
			return err
		}
		d.println(w, d.styles.Success.Render(UnloadedMessage(rec.Name)))
	case FlushCommand:
		return d.manager.Flush(ctx)
	case ListCommand:
		_, _ = io.WriteString(w, FormatList(d.styles, d.manager.Records()))
	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}
	return nil
}

// RunLine parses and runs one line of input.
func (d *Dispatcher) RunLine(ctx context.Context, line string, w io.Writer) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	return d.Run(ctx, cmd, w)
}

func (d *Dispatcher) println(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}
