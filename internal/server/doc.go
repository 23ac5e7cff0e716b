// Package server exposes benchmark metrics over HTTP while a benchmark
// session runs: /metrics in the Prometheus exposition format and /healthz
// for liveness checks.
package server
