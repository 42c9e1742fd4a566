package simlib

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLibrary_DiscoversTestBenchEntities(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "tb_feature.vhd", `
library ieee;

entity tb_feature is
end entity tb_feature;

entity helper_model is
end entity helper_model;
`)

	lib := NewLibrary("tb_lib")
	require.NoError(t, lib.AddSourceFile(context.Background(), src))

	require.Equal(t, []string{src}, lib.SourceFiles())

	benches := lib.TestBenches("*tb_feature")
	require.Len(t, benches, 1)
	require.Equal(t, "tb_feature", benches[0].Name())

	// Non test-bench entities are not registered.
	require.Empty(t, lib.TestBenches("*helper*"))
}

func TestLibrary_MissingSourceFails(t *testing.T) {
	lib := NewLibrary("tb_lib")
	err := lib.AddSourceFile(context.Background(), filepath.Join(t.TempDir(), "absent.vhd"))
	require.Error(t, err)
	require.Empty(t, lib.SourceFiles())
}

func TestLibrary_RepeatedRegistrationIsNoOp(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "tb_feature.vhd", "entity tb_feature is\nend entity;\n")

	lib := NewLibrary("tb_lib")
	require.NoError(t, lib.AddSourceFile(context.Background(), src))
	require.NoError(t, lib.AddSourceFile(context.Background(), src))

	require.Len(t, lib.SourceFiles(), 1)
	require.Len(t, lib.TestBenches("tb_*"), 1)
}

func TestBench_ScanTestsFromFile(t *testing.T) {
	dir := t.TempDir()
	tbSrc := writeSource(t, dir, "tb_feature.vhd", "entity tb_feature is\nend entity;\n")
	dispatch := writeSource(t, dir, "dispatch-body.vhd", `
package body pkg_feature_exec_dispatch is
begin
        if str_match(test_name, "arbitration") then
            arbitration_feature_exec(channel);
        elsif str_match(test_name, "rx_buf_empty") then
            rx_buf_empty_feature_exec(channel);
        end if;
end package body;
`)

	lib := NewLibrary("tb_lib")
	require.NoError(t, lib.AddSourceFile(context.Background(), tbSrc))
	bench := lib.TestBenches("*tb_feature")[0]

	tests, err := bench.ScanTestsFromFile(context.Background(), dispatch)
	require.NoError(t, err)
	require.Equal(t, []string{"arbitration", "rx_buf_empty"}, tests)
}

func TestBench_AddConfig(t *testing.T) {
	bench := &Bench{name: "tb_feature", simOptions: make(map[string]any)}

	generics := map[string]any{"timeout": 10, "test_name": "arbitration"}
	require.NoError(t, bench.AddConfig("arbitration", generics))

	// A registered config is insulated from caller mutation.
	generics["timeout"] = 99
	cfg, ok := bench.Config("arbitration")
	require.True(t, ok)
	require.Equal(t, 10, cfg.Generics["timeout"])

	require.ErrorContains(t, bench.AddConfig("arbitration", nil), "already registered")
	require.Len(t, bench.Configs(), 1)
}

func TestBench_ReturnedConfigsDoNotAliasState(t *testing.T) {
	bench := &Bench{name: "tb_feature"}
	require.NoError(t, bench.AddConfig("arbitration", map[string]any{"timeout": 10}))

	// Mutating a read-back config must not touch the registered one.
	cfg, ok := bench.Config("arbitration")
	require.True(t, ok)
	cfg.Generics["timeout"] = 99

	bench.Configs()[0].Generics["timeout"] = 77

	fresh, ok := bench.Config("arbitration")
	require.True(t, ok)
	require.Equal(t, 10, fresh.Generics["timeout"])
}

func TestBench_SimOptions(t *testing.T) {
	// A zero-value bench initializes its option map on first use.
	bench := &Bench{name: "tb_feature"}

	_, ok := bench.SimOption("modelsim.init_file.gui")
	require.False(t, ok)

	bench.SetSimOption("modelsim.init_file.gui", "wave.tcl")
	v, ok := bench.SimOption("modelsim.init_file.gui")
	require.True(t, ok)
	require.Equal(t, "wave.tcl", v)
}
