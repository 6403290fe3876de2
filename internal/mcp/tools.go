// Package mcp exposes the script host as MCP (Model Context Protocol) tools.
package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/scripthost/internal/app"
	"github.com/felixgeelhaar/scripthost/internal/domain/script"
)

// LoadInput is the input for the script_load tool.
type LoadInput struct {
	Target string `json:"target" jsonschema:"required,description=Script name to resolve in the script directories or a path to a script file"`
}

// LoadOutput is the output for the script_load tool.
type LoadOutput struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	LoadID string `json:"load_id"`
	Output string `json:"output,omitempty"`
}

// UnloadInput is the input for the script_unload tool.
type UnloadInput struct {
	Name string `json:"name" jsonschema:"required,description=Name of an active script"`
}

// UnloadOutput is the output for the script_unload tool.
type UnloadOutput struct {
	Name   string `json:"name"`
	Output string `json:"output,omitempty"`
}

// ExecInput is the input for the script_exec tool.
type ExecInput struct {
	Code      string `json:"code" jsonschema:"required,description=Inline script source"`
	Permanent bool   `json:"permanent,omitempty" jsonschema:"description=Keep the script active after it ran"`
	Name      string `json:"name,omitempty" jsonschema:"description=Name to register the script under (default: generated)"`
}

// ExecOutput is the output for the script_exec tool.
type ExecOutput struct {
	Name      string `json:"name"`
	Permanent bool   `json:"permanent"`
	Output    string `json:"output,omitempty"`
}

// FlushInput is the input for the script_flush tool.
type FlushInput struct{}

// FlushOutput is the output for the script_flush tool.
type FlushOutput struct {
	Active []ScriptInfo `json:"active"`
	Output string       `json:"output,omitempty"`
}

// ListInput is the input for the script_list tool.
type ListInput struct{}

// ListOutput is the output for the script_list tool.
type ListOutput struct {
	Count   int          `json:"count"`
	Scripts []ScriptInfo `json:"scripts"`
}

// CompleteInput is the input for the script_complete tool.
type CompleteInput struct {
	Command string `json:"command" jsonschema:"required,description=Subcommand being completed: load or unload"`
	Word    string `json:"word,omitempty" jsonschema:"description=Partial word to complete"`
}

// CompleteOutput is the output for the script_complete tool.
type CompleteOutput struct {
	Candidates []string `json:"candidates"`
}

// ScriptInfo describes one active script.
type ScriptInfo struct {
	Name       string `json:"name"`
	Descriptor string `json:"descriptor"`
	Path       string `json:"path,omitempty"`
	LoadID     string `json:"load_id"`
	LoadedAt   string `json:"loaded_at"`
}

// Output collects what scripts print while a tool runs. The host writes
// script output here instead of stdout, which carries the protocol.
type Output struct {
	run sync.Mutex
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (o *Output) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.Write(p)
}

// Drain returns and clears everything written so far.
func (o *Output) Drain() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.buf.String()
	o.buf.Reset()
	return s
}

// Capture runs fn and returns what was written while it ran. Captures are
// serialized so concurrent tool calls never see each other's output.
func (o *Output) Capture(fn func() error) (string, error) {
	o.run.Lock()
	defer o.run.Unlock()

	o.Drain()
	err := fn()
	return o.Drain(), err
}

// RegisterAll registers every script tool with the server.
func RegisterAll(srv *mcp.Server, host *app.Host, out *Output) {
	if out == nil {
		out = &Output{}
	}
	registerLoadTool(srv, host, out)
	registerUnloadTool(srv, host, out)
	registerExecTool(srv, host, out)
	registerFlushTool(srv, host, out)
	registerListTool(srv, host)
	registerCompleteTool(srv, host)
}

func registerLoadTool(srv *mcp.Server, host *app.Host, out *Output) {
	srv.Tool("script_load").
		Description("Load a script by name (user directory first, then system directory) or by path. An active script with the same name is replaced.").
		Handler(func(ctx context.Context, in LoadInput) (*LoadOutput, error) {
			if err := ValidateLoadInput(&in); err != nil {
				return nil, err
			}
			var rec *script.Record
			printed, err := out.Capture(func() (err error) {
				rec, err = host.Manager.LoadByName(ctx, in.Target)
				return err
			})
			if err != nil {
				return nil, toolError(err, printed)
			}
			return &LoadOutput{
				Name:   rec.Name,
				Path:   rec.Path,
				LoadID: rec.LoadID,
				Output: printed,
			}, nil
		})
}

func registerUnloadTool(srv *mcp.Server, host *app.Host, out *Output) {
	srv.Tool("script_unload").
		Description("Unload an active script, running its unload hook.").
		Destructive().
		Handler(func(ctx context.Context, in UnloadInput) (*UnloadOutput, error) {
			if err := ValidateUnloadInput(&in); err != nil {
				return nil, err
			}
			var rec *script.Record
			printed, err := out.Capture(func() (err error) {
				rec, err = host.Manager.Unload(ctx, in.Name)
				return err
			})
			if err != nil {
				return nil, toolError(err, printed)
			}
			return &UnloadOutput{Name: rec.Name, Output: printed}, nil
		})
}

func registerExecTool(srv *mcp.Server, host *app.Host, out *Output) {
	srv.Tool("script_exec").
		Description("Run inline script code. Unless permanent is true the script is unloaded as soon as it has run.").
		Handler(func(ctx context.Context, in ExecInput) (*ExecOutput, error) {
			if err := ValidateExecInput(&in); err != nil {
				return nil, err
			}
			var rec *script.Record
			printed, err := out.Capture(func() (err error) {
				rec, err = host.Manager.LoadText(ctx, in.Name, in.Code, in.Permanent)
				return err
			})
			if err != nil {
				return nil, toolError(err, printed)
			}
			return &ExecOutput{
				Name:      rec.Name,
				Permanent: in.Permanent,
				Output:    printed,
			}, nil
		})
}

func registerFlushTool(srv *mcp.Server, host *app.Host, out *Output) {
	srv.Tool("script_flush").
		Description("Unload every active script, then rerun the autorun scripts.").
		Destructive().
		Handler(func(ctx context.Context, _ FlushInput) (*FlushOutput, error) {
			printed, err := out.Capture(func() error {
				return host.Manager.Flush(ctx)
			})
			if err != nil {
				return nil, toolError(err, printed)
			}
			return &FlushOutput{
				Active: scriptInfos(host.Manager.Records()),
				Output: printed,
			}, nil
		})
}

func registerListTool(srv *mcp.Server, host *app.Host) {
	srv.Tool("script_list").
		Description("List active scripts in load order with their path or a preview of their source.").
		ReadOnly().
		Handler(func(_ context.Context, _ ListInput) (*ListOutput, error) {
			infos := scriptInfos(host.Manager.Records())
			return &ListOutput{Count: len(infos), Scripts: infos}, nil
		})
}

func registerCompleteTool(srv *mcp.Server, host *app.Host) {
	srv.Tool("script_complete").
		Description("Complete the argument of script load (file names) or script unload (active script names).").
		ReadOnly().
		Handler(func(_ context.Context, in CompleteInput) (*CompleteOutput, error) {
			if err := ValidateCompleteInput(&in); err != nil {
				return nil, err
			}
			var candidates []string
			switch in.Command {
			case app.SubcommandLoad:
				candidates = host.Completer.CompleteLoad(in.Word, "")
			case app.SubcommandUnload:
				candidates = host.Completer.CompleteUnload(in.Word, "")
			}
			if candidates == nil {
				candidates = []string{}
			}
			return &CompleteOutput{Candidates: candidates}, nil
		})
}

func scriptInfos(records []*script.Record) []ScriptInfo {
	infos := make([]ScriptInfo, 0, len(records))
	for _, rec := range records {
		infos = append(infos, ScriptInfo{
			Name:       rec.Name,
			Descriptor: app.Descriptor(rec),
			Path:       rec.Path,
			LoadID:     rec.LoadID,
			LoadedAt:   rec.LoadedAt.Format(time.RFC3339),
		})
	}
	return infos
}

// toolError converts a manager error into the message returned to the
// client, with any script output captured before the failure.
func toolError(err error, printed string) error {
	msg := app.ErrorMessage(err)
	var le *script.LoadError
	if errors.As(err, &le) {
		msg = fmt.Sprintf("Script %s failed to load\n%s", le.Name, le.Message)
	}
	if printed != "" {
		msg += "\noutput:\n" + printed
	}
	return errors.New(msg)
}
