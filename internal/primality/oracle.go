package primality

import "math/big"

// IsPrimeTrialDivision is the naive reference: test every d in 2..floor(sqrt(n)).
func IsPrimeTrialDivision(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d <= n/d; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// bigProbablyPrime uses math/big's Baillie-PSW test, which is exact below 2^64.
func bigProbablyPrime(n int64) bool {
	if n < 2 {
		return false
	}
	return big.NewInt(n).ProbablyPrime(0)
}

// CountPrimes returns the number of primes in [lo, hi] according to IsPrime.
func CountPrimes(lo, hi int64) int {
	count := 0
	for n := lo; n <= hi; n++ {
		if IsPrime(n) {
			count++
		}
	}
	return count
}
