package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// SuitePath is an .hcl suite file or a directory of them.
	SuitePath string

	// BuildDir receives the generated VHDL artifacts.
	BuildDir string

	// TestRoot is the directory the suite's relative VHDL sources live
	// under. Empty means the directory the suite was loaded from.
	TestRoot string

	// Library is the simulator library name the sources are registered in.
	Library string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills in the defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SuitePath == "" {
		return nil, errors.New("SuitePath is a required configuration field and cannot be empty")
	}
	if cfg.BuildDir == "" {
		cfg.BuildDir = "build"
	}
	if cfg.Library == "" {
		cfg.Library = "tb_lib"
	}
	return &cfg, nil
}
