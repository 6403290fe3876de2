package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/scripthost/internal/ports"
)

// AutorunDir is the subdirectory of the user scripts directory whose
// scripts are loaded at startup and after every flush.
const AutorunDir = "autorun"

// AutoloadResult summarizes one autoload pass.
type AutoloadResult struct {
	Loaded []string
	Failed []string
}

// Autoloader loads every script in <user dir>/autorun.
type Autoloader struct {
	fs      ports.FileSystem
	manager *Manager
	dir     string
	logger  ports.Logger
}

// NewAutoloader creates an autoloader for userDir. An empty userDir
// disables it.
func NewAutoloader(fs ports.FileSystem, manager *Manager, userDir string, logger ports.Logger) *Autoloader {
	dir := ""
	if userDir != "" {
		dir = filepath.Join(userDir, AutorunDir)
	}
	return &Autoloader{
		fs:      fs,
		manager: manager,
		dir:     dir,
		logger:  logger,
	}
}

// Dir returns the directory scanned, or "" when disabled.
func (a *Autoloader) Dir() string {
	return a.dir
}

// Run loads the autorun scripts in name order. A script that fails to
// load is logged and skipped; Run itself only fails if the directory
// exists but cannot be listed.
func (a *Autoloader) Run(ctx context.Context) (AutoloadResult, error) {
	var result AutoloadResult
	if a.dir == "" || !a.fs.IsDir(a.dir) {
		return result, nil
	}

	entries, err := a.fs.ReadDir(a.dir)
	if err != nil {
		return result, err
	}

	ext := a.manager.Interpreter().Extension()
	for _, e := range entries {
		if e.IsDir || !strings.HasSuffix(e.Name, ext) || strings.HasPrefix(e.Name, ".") {
			continue
		}
		path := filepath.Join(a.dir, e.Name)
		rec, err := a.manager.LoadFile(ctx, path)
		if err != nil {
			a.logger.Warn(ctx, "autorun script skipped", ports.F("path", path), ports.F("error", err.Error()))
			result.Failed = append(result.Failed, e.Name)
			continue
		}
		result.Loaded = append(result.Loaded, rec.Name)
	}

	a.logger.Info(ctx, "autorun complete",
		ports.F("loaded", len(result.Loaded)),
		ports.F("failed", len(result.Failed)),
	)
	return result, nil
}

// Hook adapts Run to a StartupHook.
func (a *Autoloader) Hook() StartupHook {
	return func(ctx context.Context) error {
		_, err := a.Run(ctx)
		return err
	}
}
