package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/request-sim/request-sim/sim"
	"github.com/request-sim/request-sim/sim/trace"
)

// RunConfig is the full configuration of a `run` invocation.
// It can be loaded from YAML; flags set on the command line take precedence.
type RunConfig struct {
	File    string `yaml:"file"`    // request CSV path
	Servers int    `yaml:"servers"` // 1 = single shared server, N > 1 = round-robin pool
	Trace   string `yaml:"trace"`   // "none" (default) or "decisions"
	Summary bool   `yaml:"summary"` // print the extended statistics
}

// Validate rejects configurations the simulator cannot run.
func (c RunConfig) Validate() error {
	if c.File == "" {
		return fmt.Errorf("request file not provided")
	}
	if c.Servers <= 0 {
		return fmt.Errorf("%w, got %d", sim.ErrInvalidServerCount, c.Servers)
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q (valid: none, decisions)", c.Trace)
	}
	return nil
}

// runConfigFile is the YAML form of RunConfig. Pointer fields tell an absent
// key apart from an explicit zero value such as `servers: 0`.
type runConfigFile struct {
	File    *string `yaml:"file"`
	Servers *int    `yaml:"servers"`
	Trace   *string `yaml:"trace"`
	Summary *bool   `yaml:"summary"`
}

// loadRunConfig parses a YAML run config.
// Uses strict field checking: typos must cause errors.
func loadRunConfig(path string) (runConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runConfigFile{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg runConfigFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return runConfigFile{}, fmt.Errorf("parsing config YAML %s: %w", path, err)
	}
	return cfg, nil
}

// mergeRunConfig layers the config file over flag values. A flag the user
// set explicitly always wins; otherwise a key present in the file wins;
// otherwise the flag default applies.
func mergeRunConfig(file runConfigFile, flags RunConfig, changed func(name string) bool) RunConfig {
	cfg := flags
	if file.File != nil && !changed("file") {
		cfg.File = *file.File
	}
	if file.Servers != nil && !changed("servers") {
		cfg.Servers = *file.Servers
	}
	if file.Trace != nil && !changed("trace") {
		cfg.Trace = *file.Trace
	}
	if file.Summary != nil && !changed("summary") {
		cfg.Summary = *file.Summary
	}
	return cfg
}
