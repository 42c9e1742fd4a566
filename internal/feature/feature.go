// Package feature configures the feature-test suite of the CAN FD core's
// test bench. It runs in two fixed phases driven by the application:
//
//   - AddSources assembles the VHDL source list (one *_feature_tb per test,
//     the shared bench top and dispatch package declaration), renders the
//     dispatch package body from the suite's test names and registers the
//     result, then has the feature test bench scan it for test cases.
//
//   - Configure merges each test's overrides over the suite defaults and
//     registers one named run configuration per test on the bench.
//
// The two phases share no state beyond the suite model and the library; the
// bench registry owns everything they produce.
package feature

import (
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/canfd-tools/cantb/internal/config"
	"github.com/canfd-tools/cantb/internal/ctxlog"
	"github.com/canfd-tools/cantb/internal/fsutil"
	"github.com/canfd-tools/cantb/internal/simlib"
)

const (
	// dispatchTemplateName is the fixed template the wrapper body is
	// rendered from.
	dispatchTemplateName = "pkg_feature_exec_dispatch-body.vhd.tmpl"

	// wrapperFileName is the generated package body, written under the
	// build directory and overwritten on every run.
	wrapperFileName = "pkg_feature_exec_dispatch-body.vhd"

	// benchPattern selects the feature test bench in the library.
	benchPattern = "*tb_feature"

	// logLevelSuffix maps a configured log level onto the VHDL enum
	// literal the bench expects ("info" -> "info_l").
	logLevelSuffix = "_l"

	// waveSimOption is the simulator option the default wave script is
	// attached under.
	waveSimOption = "modelsim.init_file.gui"
)

// requiredSettings must all be present in the effective settings of every
// test; the merge supplies no defaults beyond the suite's default block.
var requiredSettings = []string{"timeout", "iterations", "log_level", "error_tolerance"}

//go:embed templates/*.tmpl
var templates embed.FS

// Tests wires the feature tests of a suite into a simulator library.
type Tests struct {
	suite    *config.Suite
	lib      simlib.SourceRegistry
	testRoot string
	buildDir string
}

// NewTests creates a configurator for the given suite. testRoot is the
// directory the relative VHDL sources live under; buildDir receives the
// generated dispatch body.
func NewTests(suite *config.Suite, lib simlib.SourceRegistry, testRoot, buildDir string) *Tests {
	return &Tests{
		suite:    suite,
		lib:      lib,
		testRoot: testRoot,
		buildDir: buildDir,
	}
}

// testNames returns the suite's test names in declaration order.
func (t *Tests) testNames() []string {
	names := make([]string, 0, len(t.suite.Tests))
	for _, tc := range t.suite.Tests {
		names = append(names, tc.Name)
	}
	return names
}

// AddSources registers every feature-test source with the library, renders
// and registers the dispatch package body, and scans it for test cases.
func (t *Tests) AddSources(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	names := t.testNames()

	sources := make([]string, 0, len(names)+2)
	for _, name := range names {
		sources = append(sources, filepath.Join(t.testRoot, "feature", name+"_feature_tb.vhd"))
	}
	sources = append(sources,
		filepath.Join(t.testRoot, "feature", "tb_feature.vhd"),
		filepath.Join(t.testRoot, "feature", "pkg_feature_exec_dispatch.vhd"),
	)
	for _, src := range sources {
		if err := t.lib.AddSourceFile(ctx, src); err != nil {
			return fmt.Errorf("failed to register feature source %s: %w", src, err)
		}
	}

	wrapper := filepath.Join(t.buildDir, wrapperFileName)
	if err := t.renderDispatchBody(wrapper, names); err != nil {
		return err
	}
	logger.Debug("Dispatch package body rendered.", "path", wrapper, "tests", len(names))

	if err := t.lib.AddSourceFile(ctx, wrapper); err != nil {
		return fmt.Errorf("failed to register dispatch body %s: %w", wrapper, err)
	}

	bench, err := t.resolveBench()
	if err != nil {
		return err
	}
	found, err := bench.ScanTestsFromFile(ctx, wrapper)
	if err != nil {
		return err
	}
	logger.Info("Feature tests discovered.", "bench", bench.Name(), "tests", len(found))
	return nil
}

// Configure registers one named run configuration per test, merging the
// test's overrides over the suite defaults.
func (t *Tests) Configure(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	bench, err := t.resolveBench()
	if err != nil {
		return err
	}

	defaults := t.suite.Default
	if wave, ok := defaults["wave"]; ok {
		bench.SetSimOption(waveSimOption, wave)
		logger.Debug("Wave script attached to bench.", "bench", bench.Name(), "wave", wave)
	}

	for _, tc := range t.suite.Tests {
		overrides := tc.Overrides
		if overrides == nil {
			overrides = map[string]any{}
		}
		if _, ok := overrides["wave"]; ok {
			logger.Warn(`"wave" in a feature test's overrides is ignored, set it in the default block instead`,
				"test", tc.Name)
		}

		effective := config.Merge(defaults, overrides)
		generics, err := buildGenerics(tc.Name, effective)
		if err != nil {
			return err
		}
		if err := bench.AddConfig(tc.Name, generics); err != nil {
			return err
		}
	}

	logger.Info("Feature test configurations registered.",
		"bench", bench.Name(), "configs", len(t.suite.Tests))
	return nil
}

// resolveBench looks up the feature test bench; a library without one is a
// fatal suite error, never silently skipped.
func (t *Tests) resolveBench() (simlib.TestBench, error) {
	benches := t.lib.TestBenches(benchPattern)
	if len(benches) == 0 {
		return nil, fmt.Errorf("no test bench matching %q is registered in the library", benchPattern)
	}
	return benches[0], nil
}

// renderDispatchBody renders the embedded dispatch template with the ordered
// test-name list and writes it, UTF-8 encoded, over any previous output.
func (t *Tests) renderDispatchBody(path string, names []string) error {
	tmpl, err := template.ParseFS(templates, "templates/"+dispatchTemplateName)
	if err != nil {
		return fmt.Errorf("failed to load dispatch template %s: %w", dispatchTemplateName, err)
	}

	out, err := fsutil.OpenOutput(path)
	if err != nil {
		return fmt.Errorf("failed to open dispatch body for writing: %w", err)
	}

	data := struct{ Tests []string }{Tests: names}
	if err := tmpl.Execute(out, data); err != nil {
		out.Close()
		return fmt.Errorf("failed to render dispatch body: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write dispatch body: %w", err)
	}
	return nil
}

// buildGenerics constructs the flat generic set for one test from its
// effective settings.
func buildGenerics(name string, effective map[string]any) (map[string]any, error) {
	for _, key := range requiredSettings {
		if _, ok := effective[key]; !ok {
			return nil, fmt.Errorf("test %s: required setting %q missing after merge", name, key)
		}
	}
	level, ok := effective["log_level"].(string)
	if !ok {
		return nil, fmt.Errorf("test %s: log_level must be a string, got %T", name, effective["log_level"])
	}

	return map[string]any{
		"timeout":    effective["timeout"],
		"iterations": effective["iterations"],
		"log_level":  level + logLevelSuffix,
		"error_tol":  effective["error_tolerance"],
		"test_name":  name,
	}, nil
}
