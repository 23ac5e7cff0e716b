//go:build gmp

package primality

import "github.com/ncw/gmp"

// OracleName identifies the probabilistic oracle compiled into this binary.
const OracleName = "gmp"

// ProbablyPrime is the GMP-backed oracle used to cross-check IsPrime.
func ProbablyPrime(n int64) bool {
	if n < 2 {
		return false
	}
	return gmp.NewInt(n).ProbablyPrime(25)
}
