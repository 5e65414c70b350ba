package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names of the analyze command. Each can also be set from the
// environment as MEMTRACE_<NAME> with dashes replaced by underscores.
const (
	flagConfig         = "config"
	flagPolicy         = "policy"
	flagLatencyDivisor = "latency-divisor"
	flagUnit           = "unit"
	flagFormat         = "format"
	flagMetricsOut     = "metrics-out"
	flagJobs           = "jobs"
)

const envPrefix = "MEMTRACE"

// addAnalyzeFlags registers the analyze flags on fs.
func addAnalyzeFlags(fs *pflag.FlagSet) {
	fs.String(flagConfig, "", "Path to a YAML config file")
	fs.String(flagPolicy, "single-slot", "Request matching policy (single-slot, lookahead)")
	fs.Float64(flagLatencyDivisor, 1.0, "Divide reported latencies by this value")
	fs.String(flagUnit, "cycles", "Unit label printed after latencies")
	fs.String(flagFormat, "text", "Output format (text, yaml, json)")
	fs.String(flagMetricsOut, "", "Also write Prometheus text-format metrics to this path")
	fs.Int(flagJobs, 4, "Number of trace files analyzed concurrently")
}

// resolveAnalyzeSettings layers settings with precedence
// flag > environment > config file > flag default.
func resolveAnalyzeSettings(fs *pflag.FlagSet) (AnalyzeSettings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return AnalyzeSettings{}, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString(flagConfig); path != "" {
		cfg, err := LoadAnalyzeConfig(path)
		if err != nil {
			return AnalyzeSettings{}, err
		}
		cfg.applyTo(v)
	}

	s := AnalyzeSettings{
		Policy:         v.GetString(flagPolicy),
		LatencyDivisor: v.GetFloat64(flagLatencyDivisor),
		Unit:           v.GetString(flagUnit),
		Format:         v.GetString(flagFormat),
		MetricsOut:     v.GetString(flagMetricsOut),
		Jobs:           v.GetInt(flagJobs),
	}
	if err := s.Validate(); err != nil {
		return AnalyzeSettings{}, err
	}
	return s, nil
}

// applyTo installs the values set in the file as viper defaults, which rank
// above flag defaults and below explicit flags and the environment.
func (c *AnalyzeConfig) applyTo(v *viper.Viper) {
	if c.Policy != nil {
		v.SetDefault(flagPolicy, *c.Policy)
	}
	if c.LatencyDivisor != nil {
		v.SetDefault(flagLatencyDivisor, *c.LatencyDivisor)
	}
	if c.Unit != nil {
		v.SetDefault(flagUnit, *c.Unit)
	}
	if c.Format != nil {
		v.SetDefault(flagFormat, *c.Format)
	}
	if c.MetricsOut != nil {
		v.SetDefault(flagMetricsOut, *c.MetricsOut)
	}
	if c.Jobs != nil {
		v.SetDefault(flagJobs, *c.Jobs)
	}
}
