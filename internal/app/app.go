// Package app wires the suite loader, the simulator library and the
// generators together and drives them in their fixed order.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/canfd-tools/cantb/internal/config"
	"github.com/canfd-tools/cantb/internal/ctxlog"
	"github.com/canfd-tools/cantb/internal/feature"
	"github.com/canfd-tools/cantb/internal/fsutil"
	"github.com/canfd-tools/cantb/internal/regmap"
	"github.com/canfd-tools/cantb/internal/simlib"
)

// registerPackageName is the name (and file stem) of the generated
// register-map package.
const registerPackageName = "can_registers_pkg"

// App encapsulates the generator's dependencies, configuration and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	lib    *simlib.Library
}

// NewApp constructs the application with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		cfg:    cfg,
		lib:    simlib.NewLibrary(cfg.Library),
	}
}

// Library returns the populated simulator library. This is primarily for
// testing.
func (a *App) Library() *simlib.Library {
	return a.lib
}

// Run executes one generation pass: load the suite, register the feature
// sources, render and scan the dispatch body, register run configurations,
// and generate the register package when the suite declares one. Any error
// aborts the pass; nothing is retried.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger

	suite, err := config.Load(ctx, a.cfg.SuitePath)
	if err != nil {
		return err
	}

	testRoot := a.cfg.TestRoot
	if testRoot == "" {
		testRoot = suiteRoot(a.cfg.SuitePath)
	}

	if err := os.MkdirAll(a.cfg.BuildDir, 0o755); err != nil {
		return fmt.Errorf("failed to create build directory %s: %w", a.cfg.BuildDir, err)
	}

	tests := feature.NewTests(suite, a.lib, testRoot, a.cfg.BuildDir)
	if err := tests.AddSources(ctx); err != nil {
		return err
	}
	if err := tests.Configure(ctx); err != nil {
		return err
	}

	if len(suite.Registers) > 0 {
		if err := a.generateRegisterPackage(ctx, suite.Registers); err != nil {
			return err
		}
	}

	logger.Info("Generation pass finished.",
		"library", a.lib.Name(),
		"sources", len(a.lib.SourceFiles()),
		"tests", len(suite.Tests),
		"registers", len(suite.Registers),
	)
	return nil
}

// generateRegisterPackage writes the register-map package into the build
// directory.
func (a *App) generateRegisterPackage(ctx context.Context, regs []regmap.Register) error {
	out := filepath.Join(a.cfg.BuildDir, registerPackageName+".vhd")
	f, err := fsutil.OpenOutput(out)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", out, err)
	}
	if err := regmap.GeneratePackage(ctx, f, registerPackageName, regs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// suiteRoot is the directory the suite's relative sources are resolved
// against when no explicit test root is configured.
func suiteRoot(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
