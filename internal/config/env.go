// This file contains environment variable overrides for the configuration.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags may be set through either the short or the long form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override: the env key
// (without EnvPrefix), the flag name(s) it shadows and how to apply it.
// Values that fail to parse are ignored.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intOverride(key string, flags []string, field func(*AppConfig) *int) envOverride {
	return envOverride{key, flags, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*field(c) = parsed
		}
	}}
}

func int64Override(key string, flags []string, field func(*AppConfig) *int64) envOverride {
	return envOverride{key, flags, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			*field(c) = parsed
		}
	}}
}

func stringOverride(key string, flags []string, field func(*AppConfig) *string) envOverride {
	return envOverride{key, flags, func(c *AppConfig, v string) { *field(c) = v }}
}

func boolOverride(key string, flags []string, field func(*AppConfig) *bool) envOverride {
	return envOverride{key, flags, func(c *AppConfig, v string) {
		*field(c) = parseBoolEnv(v, *field(c))
	}}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	intOverride("RUNS", []string{"runs", "r"}, func(c *AppConfig) *int { return &c.Runs }),
	{"ITERATIONS", []string{"iterations", "k"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Iterations = parsed
		}
	}},
	int64Override("START", []string{"start"}, func(c *AppConfig) *int64 { return &c.Start }),
	intOverride("PRECISION", []string{"precision"}, func(c *AppConfig) *int { return &c.Precision }),
	int64Override("VERIFY_LIMIT", []string{"verify-limit"}, func(c *AppConfig) *int64 { return &c.VerifyLimit }),
	intOverride("VERIFY_WORKERS", []string{"verify-workers"}, func(c *AppConfig) *int { return &c.VerifyWorkers }),
	intOverride("PIN_CPU", []string{"pin-cpu"}, func(c *AppConfig) *int { return &c.PinCPU }),

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	stringOverride("WORKLOAD", []string{"workload", "w"}, func(c *AppConfig) *string { return &c.Workload }),
	stringOverride("UNIT", []string{"unit"}, func(c *AppConfig) *string { return &c.Unit }),
	stringOverride("OUTPUT", []string{"output", "o"}, func(c *AppConfig) *string { return &c.OutputFile }),
	stringOverride("METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig) *string { return &c.MetricsAddr }),
	stringOverride("METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig) *string { return &c.MetricsFile }),
	stringOverride("GC", []string{"gc"}, func(c *AppConfig) *string { return &c.GCMode }),
	stringOverride("LOG_LEVEL", []string{"log-level"}, func(c *AppConfig) *string { return &c.LogLevel }),
	stringOverride("THEME", []string{"theme"}, func(c *AppConfig) *string { return &c.Theme }),

	// Boolean overrides
	boolOverride("PRINT_PRIMES", []string{"print-primes"}, func(c *AppConfig) *bool { return &c.PrintPrimes }),
	boolOverride("SPREAD", []string{"spread"}, func(c *AppConfig) *bool { return &c.Spread }),
	boolOverride("QUIET", []string{"quiet", "q"}, func(c *AppConfig) *bool { return &c.Quiet }),
	boolOverride("VERBOSE", []string{"verbose", "v"}, func(c *AppConfig) *bool { return &c.Verbose }),
	boolOverride("NO_COLOR", []string{"no-color"}, func(c *AppConfig) *bool { return &c.NoColor }),
	boolOverride("TUI", []string{"tui"}, func(c *AppConfig) *bool { return &c.TUI }),
	boolOverride("VERIFY", []string{"verify"}, func(c *AppConfig) *bool { return &c.Verify }),
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
