package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/felixgeelhaar/scripthost/internal/app"
	"github.com/felixgeelhaar/scripthost/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile     string
	verbose     bool
	userDir     string
	systemDir   string
	interpreter string
)

var rootCmd = &cobra.Command{
	Use:   "scripthost",
	Short: "A host for named, reloadable scripts",
	Long: `Scripthost loads scripts by name or path, runs inline code, and keeps
track of which scripts are active.

Scripts are looked up in the user directory first and the system directory
second. Scripts in <user-dir>/autorun are loaded at startup and after every
flush.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command. Load errors have already been printed by
// the host's display, every other error is printed here.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !app.AlreadyReported(err) {
		printError(err)
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.scripthost/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output and debug logging")
	rootCmd.PersistentFlags().StringVar(&userDir, "user-dir", "", "user script directory")
	rootCmd.PersistentFlags().StringVar(&systemDir, "system-dir", "", "system script directory")
	rootCmd.PersistentFlags().StringVar(&interpreter, "interpreter", "", "script interpreter (lua, shell)")

	// Register flag completions
	registerFlagCompletions()

	rootCmd.AddCommand(versionCmd)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var list *config.ErrorList
	if errors.As(err, &list) {
		msgs := make([]string, 0, len(list.Errors()))
		for _, userErr := range list.Errors() {
			msgs = append(msgs, formatUserError(userErr))
		}
		return strings.Join(msgs, "\n")
	}

	var userErr *config.UserError
	if errors.As(err, &userErr) {
		return formatUserError(userErr)
	}
	return app.ErrorMessage(err)
}

func formatUserError(userErr *config.UserError) string {
	msg := userErr.Message
	if userErr.Context != "" {
		msg += fmt.Sprintf(" (at %s)", userErr.Context)
	}
	if userErr.Suggestion != "" {
		msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
	}
	if verbose && userErr.Underlying != nil {
		msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
	}
	return msg
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("interpreter", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			config.InterpreterLua + "\tLua 5.2 scripts (.lua)",
			config.InterpreterShell + "\tPOSIX shell scripts (.sh)",
		}, cobra.ShellCompDirectiveNoFileComp
	})

	for _, dir := range []string{"user-dir", "system-dir"} {
		_ = rootCmd.RegisterFlagCompletionFunc(dir, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	}
}
