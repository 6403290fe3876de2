// Package testutil provides test helpers for scripthost tests.
package testutil

import (
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a script from the embedded fixtures directory.
func LoadFixture(t testing.TB, name string) string {
	t.Helper()

	content, err := fixturesFS.ReadFile("fixtures/" + name)
	require.NoError(t, err, "failed to load fixture: %s", name)

	return string(content)
}

// ScriptDirs is a user and a system script directory on disk, with a
// config file pointing at both.
type ScriptDirs struct {
	UserDir    string
	SystemDir  string
	ConfigPath string
}

// NewScriptDirs creates the directories and a YAML config under t.TempDir.
func NewScriptDirs(t testing.TB) *ScriptDirs {
	t.Helper()

	root := t.TempDir()
	d := &ScriptDirs{
		UserDir:    filepath.Join(root, "user"),
		SystemDir:  filepath.Join(root, "system"),
		ConfigPath: filepath.Join(root, "config.yaml"),
	}
	mkdir(t, d.UserDir)
	mkdir(t, d.SystemDir)
	d.WriteConfig(t, "autorun: true\n")
	return d
}

// WriteConfig replaces the config file. The directory settings are always
// prepended; extra is appended verbatim.
func (d *ScriptDirs) WriteConfig(t testing.TB, extra string) {
	t.Helper()

	content := "user_dir: " + d.UserDir + "\nsystem_dir: " + d.SystemDir + "\n" + extra
	writeFile(t, d.ConfigPath, content)
}

// WriteUser writes a script relative to the user directory and returns its path.
func (d *ScriptDirs) WriteUser(t testing.TB, rel, content string) string {
	t.Helper()

	path := filepath.Join(d.UserDir, rel)
	writeFile(t, path, content)
	return path
}

// WriteSystem writes a script relative to the system directory and returns its path.
func (d *ScriptDirs) WriteSystem(t testing.TB, rel, content string) string {
	t.Helper()

	path := filepath.Join(d.SystemDir, rel)
	writeFile(t, path, content)
	return path
}

// WriteAutorun writes a script into the autorun directory.
func (d *ScriptDirs) WriteAutorun(t testing.TB, name, content string) string {
	t.Helper()

	return d.WriteUser(t, filepath.Join("autorun", name), content)
}

// WriteFixture copies a fixture into the user directory under dest.
func (d *ScriptDirs) WriteFixture(t testing.TB, fixture, dest string) string {
	t.Helper()

	return d.WriteUser(t, dest, LoadFixture(t, fixture))
}

func mkdir(t testing.TB, dir string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755), "failed to create directory: %s", dir)
}

func writeFile(t testing.TB, path, content string) {
	t.Helper()

	mkdir(t, filepath.Dir(path))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "failed to write file: %s", path)
}
