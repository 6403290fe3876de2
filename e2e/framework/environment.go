//go:build e2e

// Package framework provides the E2E test infrastructure for scripthost.
package framework

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

// Environment is an isolated home directory with the scripthost binary.
// HOME points at it, so the default config path and script directories
// live inside the environment.
type Environment struct {
	t          *testing.T
	rootDir    string
	homeDir    string
	systemDir  string
	binaryPath string
}

var (
	buildOnce  sync.Once
	binaryPath string
	buildErr   error
)

// findProjectRoot locates the project root directory.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// buildBinary builds the scripthost binary once per test run.
func buildBinary(t *testing.T) (string, error) {
	buildOnce.Do(func() {
		root, err := findProjectRoot()
		if err != nil {
			buildErr = err
			return
		}

		binaryPath = filepath.Join(os.TempDir(), "scripthost-e2e-test")

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/scripthost")
		cmd.Dir = root

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			buildErr = err
			t.Logf("Build stderr: %s", stderr.String())
		}
	})

	return binaryPath, buildErr
}

// NewEnvironment creates a new isolated test environment.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	binary, err := buildBinary(t)
	if err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}

	rootDir := t.TempDir()
	env := &Environment{
		t:          t,
		rootDir:    rootDir,
		homeDir:    filepath.Join(rootDir, "home"),
		systemDir:  filepath.Join(rootDir, "system"),
		binaryPath: binary,
	}
	for _, dir := range []string{env.UserDir(), env.systemDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
	return env
}

// HomeDir returns the simulated home directory.
func (e *Environment) HomeDir() string {
	return e.homeDir
}

// UserDir returns the default user script directory inside HomeDir.
func (e *Environment) UserDir() string {
	return filepath.Join(e.homeDir, ".scripthost", "scripts")
}

// SystemDir returns the system script directory passed to every command.
func (e *Environment) SystemDir() string {
	return e.systemDir
}

// BinaryPath returns the path to the built binary.
func (e *Environment) BinaryPath() string {
	return e.binaryPath
}

// WriteUserScript writes a script relative to the user directory.
func (e *Environment) WriteUserScript(rel, content string) string {
	e.t.Helper()
	return e.write(filepath.Join(e.UserDir(), rel), content)
}

// WriteSystemScript writes a script relative to the system directory.
func (e *Environment) WriteSystemScript(rel, content string) string {
	e.t.Helper()
	return e.write(filepath.Join(e.systemDir, rel), content)
}

// WriteConfig writes ~/.scripthost/config.yaml.
func (e *Environment) WriteConfig(content string) string {
	e.t.Helper()
	return e.write(filepath.Join(e.homeDir, ".scripthost", "config.yaml"), content)
}

func (e *Environment) write(path, content string) string {
	e.t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}
