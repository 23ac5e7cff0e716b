// Command generate-golden writes the golden outcomes used by the workload
// tests. Values are computed with math/big oracles that share no code with
// the timed workloads.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// PrimeScanCase is the expected outcome of scanning K values after Start.
type PrimeScanCase struct {
	Start      int64  `json:"start"`
	Iterations uint64 `json:"iterations"`
	Primes     int    `json:"primes"`
	Last       int64  `json:"last"`
}

// PrimeCountCase is the expected number of primes in [2, K].
type PrimeCountCase struct {
	Iterations uint64 `json:"iterations"`
	Primes     int    `json:"primes"`
}

// FibonacciCase is the expected pair after K iterations, modulo 2^64.
type FibonacciCase struct {
	Iterations uint64 `json:"iterations"`
	T1         uint64 `json:"t1"`
	T2         uint64 `json:"t2"`
}

// Golden is the file layout read by the workload tests.
type Golden struct {
	PrimeScan  []PrimeScanCase  `json:"prime_scan"`
	PrimeCount []PrimeCountCase `json:"prime_count"`
	Fibonacci  []FibonacciCase  `json:"fibonacci"`
}

var (
	scanInputs = []struct {
		start int64
		k     uint64
	}{
		{1, 10}, {1, 100}, {1, 1000}, {1, 10000}, {1, 100000},
		{0, 10}, {-5, 10}, {100, 100},
	}
	countInputs = []uint64{0, 1, 2, 10, 100, 1000, 10000, 100000, 1000000}
	fibInputs   = []uint64{0, 1, 10, 50, 92, 93, 100}
)

func main() {
	out := flag.String("o", filepath.Join("internal", "workload", "testdata", "golden.json"), "output file")
	flag.Parse()

	if err := run(*out); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := json.MarshalIndent(generate(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func generate() Golden {
	var g Golden
	for _, in := range scanInputs {
		g.PrimeScan = append(g.PrimeScan, PrimeScanCase{
			Start:      in.start,
			Iterations: in.k,
			Primes:     countPrimes(in.start+1, in.start+int64(in.k)),
			Last:       in.start + int64(in.k),
		})
	}
	for _, k := range countInputs {
		g.PrimeCount = append(g.PrimeCount, PrimeCountCase{Iterations: k, Primes: countPrimes(2, int64(k))})
	}
	for _, k := range fibInputs {
		t1, t2 := wrap(fibBig(k)), wrap(fibBig(k+1))
		g.Fibonacci = append(g.Fibonacci, FibonacciCase{Iterations: k, T1: t1, T2: t2})
	}
	return g
}

// countPrimes counts the primes in [lo, hi] with big.Int.ProbablyPrime,
// which is exact below 2^64.
func countPrimes(lo, hi int64) int {
	if lo < 2 {
		lo = 2
	}
	n := 0
	v := new(big.Int)
	for x := lo; x <= hi; x++ {
		if v.SetInt64(x).ProbablyPrime(0) {
			n++
		}
	}
	return n
}

// fibBig returns F(n) by plain iterated addition.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

var mod64 = new(big.Int).Lsh(big.NewInt(1), 64)

func wrap(v *big.Int) uint64 {
	return new(big.Int).Mod(v, mod64).Uint64()
}
