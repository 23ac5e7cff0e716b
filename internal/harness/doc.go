// Package harness times workloads: R runs of K inner iterations each, one
// wall-clock sample per run, summarized once all runs complete.
//
// Everything that is not the workload itself (span bookkeeping, progress
// delivery, metric recording, memory snapshots) happens outside the interval
// between the two clock readings of a run.
package harness
