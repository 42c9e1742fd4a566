// This file defines the Suite structure, the root container for everything
// loaded from a user's .hcl suite files.
//
// A suite may be split across several files in a directory: the shared
// `default` block in one, groups of `test` blocks in others, the register
// map in a third. Loading consolidates all of them into a single Suite so
// later stages never care about file boundaries.
package config

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/canfd-tools/cantb/internal/regmap"
)

// TestCase is one named feature test together with its per-test setting
// overrides. A test block with an empty body carries an empty override map.
type TestCase struct {
	Name      string
	Overrides map[string]any
}

// Suite is the loaded, order-preserving model of a test-suite description.
type Suite struct {
	// Path is the file or directory the suite was loaded from.
	Path string

	// Default holds the shared settings every test starts from.
	Default map[string]any

	// Tests preserves declaration order; run configurations are registered
	// in this order.
	Tests []TestCase

	// Registers is the optional register map for package generation.
	Registers []regmap.Register
}

// hclSuiteFile is the decode skeleton for a single suite file.
type hclSuiteFile struct {
	Default   *hclDefaultBlock    `hcl:"default,block"`
	Tests     []*hclTestBlock     `hcl:"test,block"`
	Registers []*hclRegisterBlock `hcl:"register,block"`
}

type hclDefaultBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type hclTestBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

type hclRegisterBlock struct {
	Name        string `hcl:"name,label"`
	Offset      int64  `hcl:"offset"`
	Size        int    `hcl:"size,optional"`
	Mode        string `hcl:"mode,optional"`
	Reset       uint64 `hcl:"reset,optional"`
	Description string `hcl:"description,optional"`
}
