// Package fibonacci provides the iterative Fibonacci pair recurrence timed by
// the fibonacci workload, plus an exact math/big oracle for checking it.
//
// The timed recurrence keeps two machine words and therefore wraps modulo
// 2^64 once F(94) is reached; the oracle reproduces that wrap for comparison.
package fibonacci
