package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_SuiteFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{"-suite", "suite.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, exit)
	require.Equal(t, "suite.hcl", cfg.SuitePath)
	require.Equal(t, "build", cfg.BuildDir)
	require.Equal(t, "tb_lib", cfg.Library)
}

func TestParse_PositionalPath(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{"suite"}, &out)
	require.NoError(t, err)
	require.False(t, exit)
	require.Equal(t, "suite", cfg.SuitePath)
}

func TestParse_NoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	require.True(t, exit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-suite", "s.hcl", "-log-level", "verbose"}, &out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-suite", "s.hcl", "-log-format", "xml"}, &out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}
