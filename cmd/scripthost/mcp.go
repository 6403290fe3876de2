package main

import (
	"io"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/scripthost/internal/app"
	"github.com/felixgeelhaar/scripthost/internal/config"
	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	mcptools "github.com/felixgeelhaar/scripthost/internal/mcp"
	"github.com/felixgeelhaar/scripthost/internal/ports"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agent integration",
	Long: `Start a Model Context Protocol (MCP) server that exposes the script host
to AI agents. Scripts stay active for the lifetime of the server.

Available tools:
  - script_load      Load a script by name or path
  - script_unload    Unload an active script
  - script_exec      Run inline script code
  - script_flush     Unload everything and rerun autorun scripts
  - script_list      List active scripts
  - script_complete  Complete load and unload arguments

Examples:
  scripthost mcp                      # Start stdio MCP server
  scripthost mcp --http :8080         # Start HTTP MCP server
  scripthost mcp --interpreter shell  # Host shell scripts`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

var mcpHTTP string

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpHTTP, "http", "", "Start HTTP server on address (e.g., :8080)")
}

func runMCP(cmd *cobra.Command, _ []string) error {
	// Stdout carries the protocol, so script output is captured and
	// returned in tool results instead.
	capture := &mcptools.Output{}
	host, err := openHost(cmd, hostSetup{
		out: io.Discard,
		interp: func(cfg *config.Config) (script.Interpreter, error) {
			return app.NewInterpreter(cfg.Interpreter, capture)
		},
	})
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	defer host.Close(ctx)

	if startup := capture.Drain(); startup != "" {
		host.Logger.Debug(ctx, "autorun output", ports.F("output", startup))
	}

	srv := mcp.NewServer(mcp.ServerInfo{
		Name:    "scripthost",
		Version: version,
	})
	mcptools.RegisterAll(srv, host, capture)

	if mcpHTTP != "" {
		return mcp.ServeHTTP(ctx, srv, mcpHTTP)
	}
	return mcp.ServeStdio(ctx, srv)
}
