package simlib

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/canfd-tools/cantb/internal/ctxlog"
)

// dispatchPattern matches the dispatch markers the generated package body
// carries, one per declared test case.
var dispatchPattern = regexp.MustCompile(`str_match\s*\(\s*test_name\s*,\s*"([A-Za-z0-9_]+)"\s*\)`)

// Bench is the concrete in-memory test bench.
type Bench struct {
	name       string
	path       string
	tests      []string
	configs    []RunConfig
	byName     map[string]int
	simOptions map[string]any
}

// Name returns the bench's entity name.
func (b *Bench) Name() string { return b.name }

// Tests returns the test cases recorded by the last scan.
func (b *Bench) Tests() []string {
	out := make([]string, len(b.tests))
	copy(out, b.tests)
	return out
}

// ScanTestsFromFile reads the dispatch source at path and records every
// declared test case on the bench, replacing any previous scan result.
func (b *Bench) ScanTestsFromFile(ctx context.Context, path string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot scan tests from %s: %w", path, err)
	}

	b.tests = nil
	for _, m := range dispatchPattern.FindAllStringSubmatch(string(content), -1) {
		b.tests = append(b.tests, m[1])
	}

	logger.Debug("Tests scanned from dispatch source.",
		"bench", b.name, "path", path, "tests", len(b.tests))
	return b.Tests(), nil
}

// AddConfig registers a named run configuration. The generics map is copied
// so later caller mutation cannot change a registered configuration.
func (b *Bench) AddConfig(name string, generics map[string]any) error {
	if b.byName == nil {
		b.byName = make(map[string]int)
	}
	if _, dup := b.byName[name]; dup {
		return fmt.Errorf("run configuration %q already registered on %s", name, b.name)
	}

	b.byName[name] = len(b.configs)
	b.configs = append(b.configs, RunConfig{Name: name, Generics: copyGenerics(generics)})
	return nil
}

// Configs returns the registered run configurations in registration order.
// The generic maps are copies; a registered configuration cannot be changed
// through the returned values.
func (b *Bench) Configs() []RunConfig {
	out := make([]RunConfig, len(b.configs))
	for i, cfg := range b.configs {
		out[i] = RunConfig{Name: cfg.Name, Generics: copyGenerics(cfg.Generics)}
	}
	return out
}

// Config returns the run configuration registered under name, with the same
// copy semantics as Configs.
func (b *Bench) Config(name string) (RunConfig, bool) {
	idx, ok := b.byName[name]
	if !ok {
		return RunConfig{}, false
	}
	cfg := b.configs[idx]
	return RunConfig{Name: cfg.Name, Generics: copyGenerics(cfg.Generics)}, true
}

// copyGenerics insulates registered configurations from caller mutation in
// either direction.
func copyGenerics(generics map[string]any) map[string]any {
	copied := make(map[string]any, len(generics))
	for k, v := range generics {
		copied[k] = v
	}
	return copied
}

// SetSimOption attaches a simulator option to the bench, overwriting any
// previous value for the same key.
func (b *Bench) SetSimOption(key string, value any) {
	if b.simOptions == nil {
		b.simOptions = make(map[string]any)
	}
	b.simOptions[key] = value
}

// SimOption returns the value attached under key.
func (b *Bench) SimOption(key string) (any, bool) {
	v, ok := b.simOptions[key]
	return v, ok
}
