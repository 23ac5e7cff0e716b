//go:build !gmp

package primality

// OracleName identifies the probabilistic oracle compiled into this binary.
const OracleName = "math/big"

// ProbablyPrime is the Baillie-PSW oracle used to cross-check IsPrime.
func ProbablyPrime(n int64) bool {
	return bigProbablyPrime(n)
}
