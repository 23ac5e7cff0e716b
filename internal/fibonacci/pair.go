package fibonacci

// Pair holds two consecutive Fibonacci terms (F(k), F(k+1)).
type Pair struct {
	T1 uint64 `json:"t1"`
	T2 uint64 `json:"t2"`
}

// NewPair returns the seed pair (F(0), F(1)) = (0, 1).
func NewPair() Pair {
	return Pair{T1: 0, T2: 1}
}

// Step applies one iteration: (t1, t2) -> (t2, t1+t2).
func (p Pair) Step() Pair {
	return Pair{T1: p.T2, T2: p.T1 + p.T2}
}

// Advance applies k iterations.
func (p Pair) Advance(k uint64) Pair {
	t1, t2 := p.T1, p.T2
	for i := uint64(0); i < k; i++ {
		t1, t2 = t2, t1+t2
	}
	return Pair{T1: t1, T2: t2}
}

// MaxExactIndex is the largest k for which F(k+1) fits in a uint64, so
// NewPair().Advance(k) holds exact values.
const MaxExactIndex = 92
