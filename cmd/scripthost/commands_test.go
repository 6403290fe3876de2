package main

import (
	"testing"

	"github.com/felixgeelhaar/scripthost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCommand_Flags(t *testing.T) {
	flag := mcpCmd.Flags().Lookup("http")
	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
	assert.Contains(t, mcpCmd.Long, "script_exec")
}

func TestMCPCommand_ConfigError(t *testing.T) {
	_, _, err := executeCommand(t, "--interpreter", "python", "--config", testutil.NewScriptDirs(t).ConfigPath, "mcp")
	assert.Error(t, err)
}

func TestShellCommand_RejectsArgs(t *testing.T) {
	_, _, err := executeCommand(t, "shell", "extra")
	assert.Error(t, err)
}

func TestShellCommand_ConfigError(t *testing.T) {
	_, _, err := executeCommand(t, "--interpreter", "python", "--config", testutil.NewScriptDirs(t).ConfigPath, "shell")
	assert.Error(t, err)
}

func TestScriptExec_Flags(t *testing.T) {
	assert.NotNil(t, scriptExecCmd.Flags().Lookup("permanent"))
	assert.NotNil(t, scriptExecCmd.Flags().Lookup("name"))
	assert.NotNil(t, scriptLoadCmd.ValidArgsFunction)
	assert.NotNil(t, scriptUnloadCmd.ValidArgsFunction)
}
