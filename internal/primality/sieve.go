package primality

// Sieve returns a table where entry i reports whether i is prime, for
// 0 <= i <= limit. A negative limit yields an empty table.
func Sieve(limit int) []bool {
	if limit < 0 {
		return nil
	}
	isPrime := make([]bool, limit+1)
	for i := 2; i <= limit; i++ {
		isPrime[i] = true
	}
	for p := 2; p*p <= limit; p++ {
		if !isPrime[p] {
			continue
		}
		for m := p * p; m <= limit; m += p {
			isPrime[m] = false
		}
	}
	return isPrime
}

// CountPrimesSieve returns the number of primes in [2, limit].
func CountPrimesSieve(limit int) int {
	count := 0
	for _, p := range Sieve(limit) {
		if p {
			count++
		}
	}
	return count
}
