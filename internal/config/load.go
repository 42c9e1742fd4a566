package config

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/canfd-tools/cantb/internal/ctxlog"
	"github.com/canfd-tools/cantb/internal/fsutil"
	"github.com/canfd-tools/cantb/internal/regmap"
)

// testNamePattern restricts test names to strings that are safe as both map
// keys and file-name fragments (feature/<name>_feature_tb.vhd).
var testNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Load reads a suite description from a single .hcl file or from every .hcl
// file under a directory and consolidates it into one Suite. A suite without
// a `default` block is invalid and fails here, before any test is processed.
func Load(ctx context.Context, path string) (*Suite, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find suite files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl suite files found in %s", path)
	}
	logger.Debug("Loading suite description.", "path", path, "files", len(files))

	suite := &Suite{Path: path}
	seenTests := make(map[string]string)
	parser := hclparse.NewParser()

	for _, file := range files {
		parsed, err := decodeSuiteFile(parser, file)
		if err != nil {
			return nil, err
		}

		if parsed.Default != nil {
			if suite.Default != nil {
				return nil, fmt.Errorf("duplicate default block in %s", file)
			}
			defaults, err := decodeSettings(parsed.Default.Body)
			if err != nil {
				return nil, fmt.Errorf("invalid default block in %s: %w", file, err)
			}
			suite.Default = defaults
		}

		for _, tb := range parsed.Tests {
			if !testNamePattern.MatchString(tb.Name) {
				return nil, fmt.Errorf("invalid test name %q in %s: must match %s", tb.Name, file, testNamePattern)
			}
			if prev, dup := seenTests[tb.Name]; dup {
				return nil, fmt.Errorf("duplicate test %q in %s (first declared in %s)", tb.Name, file, prev)
			}
			seenTests[tb.Name] = file

			overrides, err := decodeSettings(tb.Body)
			if err != nil {
				return nil, fmt.Errorf("invalid test %q in %s: %w", tb.Name, file, err)
			}
			suite.Tests = append(suite.Tests, TestCase{Name: tb.Name, Overrides: overrides})
		}

		for _, rb := range parsed.Registers {
			reg, err := newRegister(rb)
			if err != nil {
				return nil, fmt.Errorf("invalid register %q in %s: %w", rb.Name, file, err)
			}
			suite.Registers = append(suite.Registers, reg)
		}
	}

	if suite.Default == nil {
		return nil, fmt.Errorf("suite at %s has no default block", path)
	}

	logger.Info("Suite loaded.",
		"tests", len(suite.Tests),
		"registers", len(suite.Registers),
	)
	return suite, nil
}

// decodeSuiteFile parses one HCL file into the raw block skeleton.
func decodeSuiteFile(parser *hclparse.Parser, file string) (*hclSuiteFile, error) {
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse suite file %s: %w", file, diags)
	}

	var parsed hclSuiteFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode suite file %s: %w", file, diags)
	}
	return &parsed, nil
}

// decodeSettings evaluates every attribute of a settings body into a native
// Go map. Setting bodies are attribute-only; nested structure is expressed
// with object expressions, not blocks.
func decodeSettings(body hcl.Body) (map[string]any, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	settings := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", name, diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		settings[name] = native
	}
	return settings, nil
}

// newRegister converts a decoded register block, applying the 32-bit
// read-write defaults the register map format uses.
func newRegister(rb *hclRegisterBlock) (regmap.Register, error) {
	if rb.Offset < 0 {
		return regmap.Register{}, fmt.Errorf("offset must not be negative")
	}
	// Bounded here so the uint32 conversion below can never truncate.
	if rb.Offset >= 1<<regmap.AddressWidth {
		return regmap.Register{}, fmt.Errorf("offset 0x%x does not fit the %d-bit address space", rb.Offset, regmap.AddressWidth)
	}
	reg := regmap.Register{
		Name:        rb.Name,
		Offset:      uint32(rb.Offset),
		Size:        rb.Size,
		Mode:        rb.Mode,
		Reset:       rb.Reset,
		Description: rb.Description,
	}
	if reg.Size == 0 {
		reg.Size = 32
	}
	if reg.Mode == "" {
		reg.Mode = "rw"
	}
	return reg, nil
}
