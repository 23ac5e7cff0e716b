package fibonacci

import "math/big"

// Big returns F(n) exactly.
func Big(n uint64) *big.Int {
	f, _ := BigPair(n)
	return f
}

// BigPair returns (F(n), F(n+1)) using fast doubling:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k)^2 + F(k+1)^2
func BigPair(n uint64) (*big.Int, *big.Int) {
	a, b := big.NewInt(0), big.NewInt(1)
	t1, t2 := new(big.Int), new(big.Int)
	for bit := 63; bit >= 0; bit-- {
		// a, b = F(2k), F(2k+1)
		t1.Lsh(b, 1)
		t1.Sub(t1, a)
		t1.Mul(a, t1)
		t2.Mul(b, b)
		b.Mul(a, a)
		b.Add(b, t2)
		a.Set(t1)
		if n&(1<<uint(bit)) != 0 {
			// a, b = F(2k+1), F(2k+2)
			a, b = b, a.Add(a, b)
		}
	}
	return a, b
}

var mask64 = new(big.Int).SetUint64(^uint64(0))

// Wrapped returns the pair the uint64 recurrence holds after k iterations,
// computed exactly and reduced modulo 2^64.
func Wrapped(k uint64) Pair {
	a, b := BigPair(k)
	return Pair{
		T1: new(big.Int).And(a, mask64).Uint64(),
		T2: new(big.Int).And(b, mask64).Uint64(),
	}
}
