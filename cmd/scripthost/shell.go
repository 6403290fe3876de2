package main

import (
	"fmt"

	"github.com/felixgeelhaar/scripthost/internal/tui"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive script shell",
	Long: `Start an interactive shell. Scripts stay active until they are unloaded,
flushed, or the shell exits.

Commands are the script subcommands, with or without the "script" prefix:
  script exec [-permanent] [-name NAME] <code>
  script load <name|path>
  script unload <name>
  script flush
  script list

Tab completes script files after "load" and active scripts after "unload".`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	out := &tui.Output{}
	host, err := openHost(cmd, hostSetup{out: out})
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	defer host.Close(ctx)

	title := fmt.Sprintf("scripthost %s (%s). Type help for commands, exit to leave.", version, host.Config.Interpreter)
	result, err := tui.RunShell(ctx, tui.NewShellOptions(host, out).WithTitle(title))
	if err != nil {
		return err
	}
	if verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%d command(s) run\n", result.Commands)
	}
	return nil
}
