package main

import (
	"bytes"
	"context"
	"testing"
)

// resetFlags restores every package-level flag variable, since cobra keeps
// parsed values between executions of the same command tree.
func resetFlags() {
	cfgFile = ""
	verbose = false
	userDir = ""
	systemDir = ""
	interpreter = ""
	execPermanent = false
	execName = ""
	mcpHTTP = ""
}

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags()
	t.Cleanup(resetFlags)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
