package simlib

import (
	"context"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/canfd-tools/cantb/internal/ctxlog"
)

// entityPattern matches VHDL entity declarations. Entity extraction here is
// line-regular; the full language is not needed to find test-bench tops.
var entityPattern = regexp.MustCompile(`(?im)^\s*entity\s+([a-z][a-z0-9_]*)\s+is\b`)

// Library is the in-memory registry for one simulator library.
type Library struct {
	name    string
	sources []string
	benches []*Bench
	byName  map[string]*Bench
}

// NewLibrary creates an empty library with the given name.
func NewLibrary(name string) *Library {
	return &Library{
		name:   name,
		byName: make(map[string]*Bench),
	}
}

// Name returns the library name.
func (l *Library) Name() string { return l.name }

// SourceFiles returns every registered source path in registration order.
func (l *Library) SourceFiles() []string {
	out := make([]string, len(l.sources))
	copy(out, l.sources)
	return out
}

// AddSourceFile registers a VHDL source with the library. The file must be
// readable; every entity named tb_* found in it is registered as a test
// bench. Registering the same path again is a no-op.
func (l *Library) AddSourceFile(ctx context.Context, p string) error {
	logger := ctxlog.FromContext(ctx)

	for _, existing := range l.sources {
		if existing == p {
			logger.Debug("Source already registered, skipping.", "path", p)
			return nil
		}
	}

	content, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("cannot read source file: %w", err)
	}
	l.sources = append(l.sources, p)

	for _, m := range entityPattern.FindAllStringSubmatch(string(content), -1) {
		// VHDL identifiers are case-insensitive; benches are keyed lowercase.
		entity := strings.ToLower(m[1])
		if !strings.HasPrefix(entity, "tb_") {
			continue
		}
		if _, dup := l.byName[entity]; dup {
			return fmt.Errorf("test bench %s declared twice (second time in %s)", entity, p)
		}
		bench := &Bench{name: entity, path: p, simOptions: make(map[string]any)}
		l.benches = append(l.benches, bench)
		l.byName[entity] = bench
		logger.Debug("Test bench discovered.", "entity", entity, "path", p)
	}

	return nil
}

// TestBenches returns the benches whose entity name matches the shell-style
// pattern, in discovery order.
func (l *Library) TestBenches(pattern string) []TestBench {
	var out []TestBench
	for _, bench := range l.benches {
		ok, err := path.Match(pattern, bench.name)
		if err != nil {
			// A malformed pattern is a programmer error, not user input.
			panic(fmt.Sprintf("simlib: bad test bench pattern %q: %v", pattern, err))
		}
		if ok {
			out = append(out, bench)
		}
	}
	return out
}
