// Package primality implements the 6k±1 trial-division primality predicate
// timed by the prime workloads, the coercion step used for loosely typed
// input, and the reference oracles (naive trial division, Baillie-PSW via
// math/big or GMP, and a sieve of Eratosthenes) used to verify it.
package primality
