package workload

import "github.com/agbru/microbench/internal/fibonacci"

// Fibonacci advances the pair (0, 1) K times. Ten iterations end at (55, 89).
type Fibonacci struct{}

func (*Fibonacci) Name() string { return "fibonacci" }

func (*Fibonacci) Description() string {
	return "advance the Fibonacci pair (t1, t2) -> (t2, t1+t2), wrapping at 2^64"
}

func (*Fibonacci) DefaultIterations() uint64 { return 10_000_000 }

func (*Fibonacci) ReportsSpread() bool { return true }

func (*Fibonacci) ReportsCV() bool { return true }

func (*Fibonacci) Run(iterations uint64) Outcome {
	p := fibonacci.NewPair().Advance(iterations)
	return Outcome{Iterations: iterations, T1: p.T1, T2: p.T2}
}

// Pair returns the outcome's final Fibonacci pair.
func (o Outcome) Pair() fibonacci.Pair {
	return fibonacci.Pair{T1: o.T1, T2: o.T2}
}
