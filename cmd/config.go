package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/memtrace/trace"
)

// AnalyzeConfig is the optional YAML file passed with --config.
// Nil fields mean "not set in YAML" and leave the flag default in place.
type AnalyzeConfig struct {
	Policy         *string  `yaml:"policy"`
	LatencyDivisor *float64 `yaml:"latency_divisor"`
	Unit           *string  `yaml:"unit"`
	Format         *string  `yaml:"format"`
	MetricsOut     *string  `yaml:"metrics_out"`
	Jobs           *int     `yaml:"jobs"`
}

// LoadAnalyzeConfig reads and strictly parses an analyze config file.
// Unknown keys are errors so typos cannot silently fall back to defaults.
func LoadAnalyzeConfig(path string) (*AnalyzeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading analyze config: %w", err)
	}
	var cfg AnalyzeConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing analyze config %s: %w", path, err)
	}
	return &cfg, nil
}

// ValidOutputFormats is the set of recognized analyze output formats.
var ValidOutputFormats = map[string]bool{"text": true, "yaml": true, "json": true}

// ValidSweepFormats is the set of recognized sweep output formats.
var ValidSweepFormats = map[string]bool{"table": true, "csv": true, "yaml": true, "json": true}

// AnalyzeSettings is the resolved configuration of one analyze invocation.
type AnalyzeSettings struct {
	Policy         string
	LatencyDivisor float64
	Unit           string
	Format         string
	MetricsOut     string
	Jobs           int
}

// Validate checks names and ranges of the resolved settings.
func (s AnalyzeSettings) Validate() error {
	if !trace.IsValidMatchPolicy(s.Policy) {
		return fmt.Errorf("unknown match policy %q", s.Policy)
	}
	if !ValidOutputFormats[s.Format] {
		return fmt.Errorf("unknown output format %q", s.Format)
	}
	if s.LatencyDivisor <= 0 {
		return fmt.Errorf("latency_divisor must be positive, got %g", s.LatencyDivisor)
	}
	if s.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", s.Jobs)
	}
	return nil
}
