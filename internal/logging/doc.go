// Package logging provides a unified logging interface for the benchmark runner.
// It abstracts the underlying logging implementation, allowing consistent logging
// across the harness, orchestration and server components while supporting
// multiple backends.
package logging
