package config

import "runtime"

// ApplyAdaptiveDefaults fills zero-valued settings whose best value depends
// on the host. Explicit user values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.VerifyWorkers <= 0 {
		cfg.VerifyWorkers = EstimateVerifyWorkers()
	}
	return cfg
}

// EstimateVerifyWorkers leaves one CPU free on hosts with more than two so
// that the terminal stays responsive during --verify.
func EstimateVerifyWorkers() int {
	n := runtime.NumCPU()
	if n > 2 {
		return n - 1
	}
	return n
}
