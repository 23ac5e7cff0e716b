package primality

import "math"

// IsPrime reports whether n is prime using 6k±1 trial division.
//
// Candidates 2 and 3 are handled directly; every other prime has the form
// 6k-1 or 6k+1, so only those divisors are tested, up to floor(sqrt(n)).
func IsPrime(n int64) bool {
	if n <= 1 {
		return false
	}
	return isPrimeUint64(uint64(n))
}

func isPrimeUint64(n uint64) bool {
	if n == 2 || n == 3 {
		return true
	}
	if n <= 1 || n%2 == 0 || n%3 == 0 {
		return false
	}
	limit := isqrt(n)
	for x := uint64(6); x-1 <= limit; x += 6 {
		if n%(x-1) == 0 || n%(x+1) == 0 {
			return false
		}
	}
	return true
}

// isqrt returns floor(sqrt(n)) exactly, correcting float rounding.
func isqrt(n uint64) uint64 {
	const maxRoot = math.MaxUint32
	r := uint64(math.Sqrt(float64(n)))
	if r > maxRoot {
		r = maxRoot
	}
	for r*r > n {
		r--
	}
	for r < maxRoot && (r+1)*(r+1) <= n {
		r++
	}
	return r
}
