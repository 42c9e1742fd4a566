// Package simlib models the simulator's source library: registered source
// files, the test benches discovered in them, and the named run
// configurations attached to each bench. It is the in-process stand-in for
// the simulation framework the generated project is handed to.
package simlib

import "context"

// SourceRegistry is the surface the configurators use to register VHDL
// sources with a library.
type SourceRegistry interface {
	AddSourceFile(ctx context.Context, path string) error
	TestBenches(pattern string) []TestBench
}

// TestBench is one simulated top-level entity under which tests run.
type TestBench interface {
	Name() string

	// ScanTestsFromFile extracts the test cases declared in a dispatch
	// source file and records them on the bench.
	ScanTestsFromFile(ctx context.Context, path string) ([]string, error)

	// AddConfig registers a named run configuration with its generic set.
	// Registering the same name twice is an error.
	AddConfig(name string, generics map[string]any) error

	// SetSimOption attaches a simulator option (e.g. a GUI wave script)
	// to every run of this bench.
	SetSimOption(key string, value any)
}

// RunConfig is a named generic set for a single test-bench execution.
type RunConfig struct {
	Name     string
	Generics map[string]any
}
