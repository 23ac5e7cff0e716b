package workload

import (
	"math"

	"github.com/agbru/microbench/internal/primality"
)

// MaxSieveIterations bounds the sieve, which allocates one byte per value in
// [0, K].
const MaxSieveIterations uint64 = 1 << 30

// PrimeScan increments a counter K times, testing each new value for
// primality. Starting from 1 with K = 100000 it tests 2..100001 and finds
// 9592 primes.
type PrimeScan struct {
	// Start is the counter value before the first increment.
	Start int64
	// OnPrime, when set, is called with every prime found. It runs inside
	// the timed loop.
	OnPrime func(n int64)
}

func (w *PrimeScan) Name() string { return "prime-scan" }

func (w *PrimeScan) Description() string {
	return "increment a counter and test each value with 6k±1 trial division"
}

func (w *PrimeScan) DefaultIterations() uint64 { return 100_000 }

func (w *PrimeScan) ReportsSpread() bool { return false }

// MaxIterations keeps the counter, Start+K, within int64.
func (w *PrimeScan) MaxIterations() uint64 {
	return uint64(math.MaxInt64) - uint64(w.Start)
}

func (w *PrimeScan) Run(iterations uint64) Outcome {
	test := w.Start
	primes := 0
	for count := uint64(0); count < iterations; count++ {
		test++
		if primality.IsPrime(test) {
			primes++
			if w.OnPrime != nil {
				w.OnPrime(test)
			}
		}
	}
	return Outcome{Iterations: iterations, Primes: primes, Last: test}
}

// PrimeCount counts the primes in [2, K] with the trial-division predicate.
type PrimeCount struct{}

func (PrimeCount) Name() string { return "prime-count" }

func (PrimeCount) Description() string {
	return "count primes in [2, K] with 6k±1 trial division"
}

func (PrimeCount) DefaultIterations() uint64 { return 1_000_000 }

func (PrimeCount) ReportsSpread() bool { return true }

func (PrimeCount) Run(iterations uint64) Outcome {
	primes := 0
	for n := uint64(2); n <= iterations; n++ {
		if primality.IsPrime(int64(n)) {
			primes++
		}
	}
	return Outcome{Iterations: iterations, Primes: primes}
}

// Sieve counts the primes in [2, K] with a sieve of Eratosthenes.
type Sieve struct{}

func (Sieve) Name() string { return "sieve" }

func (Sieve) Description() string {
	return "count primes in [2, K] with a sieve of Eratosthenes"
}

func (Sieve) DefaultIterations() uint64 { return 1_000_000 }

func (Sieve) ReportsSpread() bool { return true }

func (Sieve) MaxIterations() uint64 { return MaxSieveIterations }

func (Sieve) Run(iterations uint64) Outcome {
	return Outcome{Iterations: iterations, Primes: primality.CountPrimesSieve(int(iterations))}
}

// primesUpToK groups workloads that must report the same prime count for the
// same K.
const primesUpToK = "primes-up-to-k"

func (PrimeCount) ConsistencyGroup() string { return primesUpToK }

func (Sieve) ConsistencyGroup() string { return primesUpToK }
