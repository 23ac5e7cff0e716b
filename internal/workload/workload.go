// Package workload defines the inner loops timed by the harness and the
// registry used to select them by name.
package workload

import "math"

// MaxIterations is the largest K any workload accepts. Workloads whose state
// cannot cover that range declare a tighter bound with MaxIterations() uint64.
const MaxIterations uint64 = math.MaxInt64

// Workload is one timed inner loop. Run must start from fresh local state on
// every call so that runs are independent.
type Workload interface {
	// Name is the registry key, e.g. "prime-scan".
	Name() string
	// Description is a one-line human-readable summary.
	Description() string
	// DefaultIterations is the inner-iteration count K used when none is set.
	DefaultIterations() uint64
	// ReportsSpread tells presenters whether the standard deviation is part
	// of this workload's default summary.
	ReportsSpread() bool
	// Run executes iterations inner iterations and reports what it computed.
	Run(iterations uint64) Outcome
}

// Outcome is the observable result of one run. Fields that do not apply to a
// workload are left zero.
type Outcome struct {
	Iterations uint64 `json:"iterations"`
	// Primes is the number of primes found by the prime workloads.
	Primes int `json:"primes,omitempty"`
	// Last is the final counter value of the prime scan.
	Last int64 `json:"last,omitempty"`
	// T1 and T2 are the final Fibonacci pair.
	T1 uint64 `json:"t1,omitempty"`
	T2 uint64 `json:"t2,omitempty"`
}

// ReportsCV reports whether the coefficient of variation belongs to the
// default summary of w. Workloads opt in by implementing ReportsCV() bool.
func ReportsCV(w Workload) bool {
	r, ok := w.(interface{ ReportsCV() bool })
	return ok && r.ReportsCV()
}

// ConsistencyGroup returns the group of workloads whose outcomes must agree
// with w's for equal iteration counts, or "" when w belongs to none.
// Workloads opt in by implementing ConsistencyGroup() string.
func ConsistencyGroup(w Workload) string {
	if g, ok := w.(interface{ ConsistencyGroup() string }); ok {
		return g.ConsistencyGroup()
	}
	return ""
}

// IterationLimit returns the largest K w can run without overflowing its
// state or exhausting memory.
func IterationLimit(w Workload) uint64 {
	if l, ok := w.(interface{ MaxIterations() uint64 }); ok {
		return min(l.MaxIterations(), MaxIterations)
	}
	return MaxIterations
}
