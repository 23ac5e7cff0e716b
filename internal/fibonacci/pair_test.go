package fibonacci

import (
	"math/big"
	"testing"
)

func TestAdvanceTenIterations(t *testing.T) {
	t.Parallel()
	got := NewPair().Advance(10)
	if got.T1 != 55 || got.T2 != 89 {
		t.Fatalf("Advance(10) = (%d, %d), want (55, 89)", got.T1, got.T2)
	}
}

func TestAdvance(t *testing.T) {
	t.Parallel()
	tests := []struct {
		k      uint64
		t1, t2 uint64
	}{
		{0, 0, 1},
		{1, 1, 1},
		{2, 1, 2},
		{20, 6765, 10946},
		{MaxExactIndex, 7540113804746346429, 12200160415121876738},
	}
	for _, tt := range tests {
		got := NewPair().Advance(tt.k)
		if got.T1 != tt.t1 || got.T2 != tt.t2 {
			t.Errorf("Advance(%d) = (%d, %d), want (%d, %d)", tt.k, got.T1, got.T2, tt.t1, tt.t2)
		}
	}
}

func TestStepMatchesAdvance(t *testing.T) {
	t.Parallel()
	p := NewPair()
	for i := 0; i < 200; i++ {
		p = p.Step()
	}
	if want := NewPair().Advance(200); p != want {
		t.Fatalf("200 steps = %+v, Advance(200) = %+v", p, want)
	}
}

func TestBig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{10, "55"},
		{93, "12200160415121876738"},
		{94, "19740274219868223167"},
		{100, "354224848179261915075"},
	}
	for _, tt := range tests {
		want, _ := new(big.Int).SetString(tt.want, 10)
		if got := Big(tt.n); got.Cmp(want) != 0 {
			t.Errorf("Big(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

// TestAdvanceWrapsModulo2To64 checks that the word-sized recurrence agrees
// with the exact values reduced modulo 2^64 well past the overflow point.
func TestAdvanceWrapsModulo2To64(t *testing.T) {
	t.Parallel()
	for _, k := range []uint64{0, 10, 92, 93, 94, 1000, 123456} {
		if got, want := NewPair().Advance(k), Wrapped(k); got != want {
			t.Errorf("Advance(%d) = %+v, want %+v", k, got, want)
		}
	}
}

func FuzzAdvance(f *testing.F) {
	for _, seed := range []uint16{0, 1, 10, 93, 94, 5000} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, k uint16) {
		if got, want := NewPair().Advance(uint64(k)), Wrapped(uint64(k)); got != want {
			t.Fatalf("Advance(%d) = %+v, want %+v", k, got, want)
		}
	})
}
