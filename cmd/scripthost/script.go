package main

import (
	"context"
	"io"
	"strings"

	"github.com/felixgeelhaar/scripthost/internal/app"
	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Run, load and unload scripts",
	Long: `Run, load and unload scripts.

Each invocation starts a fresh host: autorun scripts are loaded, the
subcommand runs, and every script is unloaded on exit. Use "scripthost shell"
to keep scripts active between commands.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		if len(args) > 0 {
			return &app.InputError{Command: "script", Reason: app.ErrUnknownSubcommand, Detail: args[0]}
		}
		return &app.InputError{Command: "script", Reason: app.ErrMissingSubcommand}
	},
}

var (
	execPermanent bool
	execName      string
)

var scriptExecCmd = &cobra.Command{
	Use:   "exec [--permanent] [--name NAME] <code>...",
	Short: "Run inline script code",
	Long: `Run inline script code. The arguments are joined with spaces.

Without --permanent the script is unloaded as soon as it has run.`,
	Example: `  scripthost script exec 'print("hello")'
  scripthost --interpreter shell script exec echo hi`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		code := strings.TrimSpace(strings.Join(args, " "))
		if code == "" {
			return &app.InputError{Command: app.SubcommandExec, Reason: app.ErrNotEnoughParams}
		}
		return runScriptCommand(cmd, app.ExecCommand{Code: code, Permanent: execPermanent, Name: execName})
	},
}

var scriptLoadCmd = &cobra.Command{
	Use:               "load <name|path>",
	Short:             "Load a script by name or path",
	Args:              singleArg(app.SubcommandLoad),
	ValidArgsFunction: completeLoadArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScriptCommand(cmd, app.LoadCommand{Target: args[0]})
	},
}

var scriptUnloadCmd = &cobra.Command{
	Use:               "unload <name>",
	Short:             "Unload an active script",
	Args:              singleArg(app.SubcommandUnload),
	ValidArgsFunction: completeUnloadArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScriptCommand(cmd, app.UnloadCommand{Name: args[0]})
	},
}

var scriptFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Unload every script and rerun autorun scripts",
	Args:  noArgs(app.SubcommandFlush),
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runScriptCommand(cmd, app.FlushCommand{})
	},
}

var scriptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active scripts",
	Args:  noArgs(app.SubcommandList),
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runScriptCommand(cmd, app.ListCommand{})
	},
}

func init() {
	scriptExecCmd.Flags().BoolVar(&execPermanent, "permanent", false, "keep the script active after it ran")
	scriptExecCmd.Flags().StringVar(&execName, "name", "", "name to register the script under")

	scriptCmd.AddCommand(scriptExecCmd, scriptLoadCmd, scriptUnloadCmd, scriptFlushCmd, scriptListCmd)
	rootCmd.AddCommand(scriptCmd)
}

func runScriptCommand(cmd *cobra.Command, c app.Command) error {
	return withHost(cmd, func(ctx context.Context, host *app.Host) error {
		return host.Dispatcher.Run(ctx, c, cmd.OutOrStdout())
	})
}

// singleArg reports argument count problems as input errors, like the
// interactive shell does.
func singleArg(sub string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		switch {
		case len(args) == 0:
			return &app.InputError{Command: sub, Reason: app.ErrNotEnoughParams}
		case len(args) > 1:
			return &app.InputError{Command: sub, Reason: app.ErrTooManyParams, Detail: strings.Join(args[1:], " ")}
		}
		return nil
	}
}

func noArgs(sub string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > 0 {
			return &app.InputError{Command: sub, Reason: app.ErrTooManyParams, Detail: strings.Join(args, " ")}
		}
		return nil
	}
}

func completeLoadArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	host, err := openHost(cmd, hostSetup{out: io.Discard, skipStart: true})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer host.Close(cmd.Context())
	return host.Completer.CompleteLoad(toComplete, ""), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeUnloadArgs offers the scripts a one-shot host has active, which
// are the autorun scripts.
func completeUnloadArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	host, err := openHost(cmd, hostSetup{out: io.Discard})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer host.Close(cmd.Context())
	return host.Completer.CompleteUnload(toComplete, ""), cobra.ShellCompDirectiveNoFileComp
}
