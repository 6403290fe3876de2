package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/scripthost/internal/app"
	"github.com/felixgeelhaar/scripthost/internal/config"
	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	"github.com/felixgeelhaar/scripthost/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptCommand_RequiresSubcommand(t *testing.T) {
	_, _, err := executeCommand(t, "script")
	require.Error(t, err)
	assert.True(t, app.IsInputError(err))
	assert.ErrorIs(t, err, app.ErrMissingSubcommand)

	_, _, err = executeCommand(t, "script", "bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrUnknownSubcommand)
}

func TestScriptExec_Transient(t *testing.T) {
	env := testutil.NewScriptDirs(t)

	out, _, err := executeCommand(t, "--config", env.ConfigPath, "script", "exec", `print("hi from " .. SCRIPT_NAME)`)
	require.NoError(t, err)
	assert.Equal(t, "hi from data1\n", out)
}

func TestScriptExec_Permanent(t *testing.T) {
	env := testutil.NewScriptDirs(t)

	out, _, err := executeCommand(t, "--config", env.ConfigPath,
		"script", "exec", "--permanent", "--name", "greet", `print("hi")`)
	require.NoError(t, err)
	assert.Contains(t, out, "hi\n")
	assert.Contains(t, out, "Loaded script greet")
}

func TestScriptExec_NoCode(t *testing.T) {
	env := testutil.NewScriptDirs(t)

	_, _, err := executeCommand(t, "--config", env.ConfigPath, "script", "exec")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrNotEnoughParams)
}

func TestScriptExec_ShellInterpreter(t *testing.T) {
	env := testutil.NewScriptDirs(t)

	out, _, err := executeCommand(t, "--config", env.ConfigPath, "--interpreter", "shell",
		"script", "exec", "echo", "hi", "there")
	require.NoError(t, err)
	assert.Equal(t, "hi there\n", out)
}

func TestScriptLoad(t *testing.T) {
	env := testutil.NewScriptDirs(t)
	path := env.WriteFixture(t, "hello.lua", "hello.lua")

	out, _, err := executeCommand(t, "--config", env.ConfigPath, "script", "load", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "hello from hello\n")
	assert.Contains(t, out, "Loaded script hello ("+path+")")
}

func TestScriptLoad_ShellRunsUnloadHookOnExit(t *testing.T) {
	env := testutil.NewScriptDirs(t)
	path := env.WriteFixture(t, "hello.sh", "hello.sh")

	out, _, err := executeCommand(t, "--config", env.ConfigPath, "--interpreter", "shell", "script", "load", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello from hello\nLoaded script hello ("+path+")\nunloading hello\n", out)
}

func TestScriptLoad_Errors(t *testing.T) {
	env := testutil.NewScriptDirs(t)
	env.WriteFixture(t, "broken.lua", "broken.lua")

	_, _, err := executeCommand(t, "--config", env.ConfigPath, "script", "load", "missing")
	require.Error(t, err)
	assert.True(t, script.IsNotFound(err))
	assert.Equal(t, "Script missing not found", formatError(err))

	out, errOut, err := executeCommand(t, "--config", env.ConfigPath, "script", "load", "broken")
	require.Error(t, err)
	assert.True(t, app.AlreadyReported(err))
	assert.Contains(t, errOut, "Script broken failed to load")
	assert.NotContains(t, out, "failed to load")

	_, _, err = executeCommand(t, "--config", env.ConfigPath, "script", "load")
	assert.ErrorIs(t, err, app.ErrNotEnoughParams)

	_, _, err = executeCommand(t, "--config", env.ConfigPath, "script", "load", "a", "b")
	assert.ErrorIs(t, err, app.ErrTooManyParams)
}

func TestScriptList_ShowsAutorun(t *testing.T) {
	env := testutil.NewScriptDirs(t)
	env.WriteAutorun(t, "boot.lua", `print("booting")`)

	out, _, err := executeCommand(t, "--config", env.ConfigPath, "script", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "booting\n")
	assert.Contains(t, out, "Loaded scripts:")
	assert.Contains(t, out, "boot")
	assert.Contains(t, out, "1 script(s)")
}

func TestScriptList_Empty(t *testing.T) {
	env := testutil.NewScriptDirs(t)

	out, _, err := executeCommand(t, "--config", env.ConfigPath, "script", "list")
	require.NoError(t, err)
	assert.Equal(t, "No scripts loaded\n", out)
}

func TestScriptUnload(t *testing.T) {
	env := testutil.NewScriptDirs(t)
	env.WriteAutorun(t, "boot.lua", `function unload() print("bye") end`)

	out, _, err := executeCommand(t, "--config", env.ConfigPath, "script", "unload", "boot")
	require.NoError(t, err)
	assert.Equal(t, "bye\nUnloaded script boot\n", out)

	_, _, err = executeCommand(t, "--config", env.ConfigPath, "script", "unload", "ghost")
	require.Error(t, err)
	assert.True(t, script.IsNotLoaded(err))
}

func TestScriptFlush_RerunsAutorun(t *testing.T) {
	env := testutil.NewScriptDirs(t)
	env.WriteAutorun(t, "boot.lua", `print("booting")`)

	out, _, err := executeCommand(t, "--config", env.ConfigPath, "script", "flush")
	require.NoError(t, err)
	assert.Equal(t, "booting\nbooting\n", out)
}

func TestScript_ConfigErrors(t *testing.T) {
	env := testutil.NewScriptDirs(t)

	_, _, err := executeCommand(t, "--config", env.ConfigPath, "--interpreter", "python", "script", "list")
	require.Error(t, err)
	var list *config.ErrorList
	require.True(t, errors.As(err, &list))
	assert.Contains(t, formatError(err), "interpreter")

	_, _, err = executeCommand(t, "--config", filepath.Join(env.UserDir, "nope.yaml"), "script", "list")
	require.Error(t, err)
	assert.True(t, config.IsUserError(err, config.ErrCodeConfigNotFound))
}

func TestScript_UserDirFlagOverridesConfig(t *testing.T) {
	env := testutil.NewScriptDirs(t)
	other := testutil.NewScriptDirs(t)
	path := other.WriteUser(t, "only.lua", `print("other dir")`)

	out, _, err := executeCommand(t, "--config", env.ConfigPath, "--user-dir", other.UserDir, "script", "load", "only")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded script only ("+path+")")
}

func TestCompleteLoadArgs(t *testing.T) {
	env := testutil.NewScriptDirs(t)
	env.WriteUser(t, "hello.lua", "")
	env.WriteUser(t, "help.lua", "")
	resetFlags()
	defer resetFlags()
	cfgFile = env.ConfigPath

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	got, directive := completeLoadArgs(cmd, nil, "hel")
	assert.ElementsMatch(t, []string{"hello.lua", "help.lua"}, got)
	assert.NotZero(t, directive&cobra.ShellCompDirectiveNoFileComp)

	got, _ = completeLoadArgs(cmd, []string{"already"}, "hel")
	assert.Empty(t, got)
}

func TestCompleteUnloadArgs(t *testing.T) {
	env := testutil.NewScriptDirs(t)
	env.WriteAutorun(t, "boot.lua", "")
	env.WriteAutorun(t, "bootstrap.lua", "")
	resetFlags()
	defer resetFlags()
	cfgFile = env.ConfigPath

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	got, _ := completeUnloadArgs(cmd, nil, "boot")
	assert.ElementsMatch(t, []string{"boot", "bootstrap"}, got)
}

func TestCompleteArgs_ConfigError(t *testing.T) {
	resetFlags()
	defer resetFlags()
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	_, directive := completeLoadArgs(cmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveError, directive)
}
