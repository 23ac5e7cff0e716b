// Package stats summarizes the per-run timing samples of a benchmark.
package stats

import (
	"time"

	"github.com/aclements/go-moremath/stats"
)

// Summary describes a set of samples expressed in a single unit.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	// CV is the coefficient of variation in percent: 100 * StdDev / Mean.
	CV     float64 `json:"cv_percent"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	// HasSpread is false when fewer than two samples exist, in which case
	// StdDev and CV are zero and must not be reported.
	HasSpread bool `json:"has_spread"`
}

// Summarize computes the summary of xs. StdDev is the sample standard
// deviation (divisor N-1). An empty input yields the zero Summary.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}

	// Sorting must not reorder the caller's samples.
	sample := stats.Sample{Xs: append([]float64(nil), xs...)}
	sample.Sort()
	lo, hi := sample.Bounds()

	s := Summary{
		N:      len(xs),
		Mean:   sample.Mean(),
		Min:    lo,
		Max:    hi,
		Median: sample.Quantile(0.5),
	}
	if s.N < 2 {
		return s
	}
	s.HasSpread = true
	s.StdDev = sample.StdDev()
	if s.Mean != 0 {
		s.CV = 100 * s.StdDev / s.Mean
	}
	return s
}

// Scale multiplies every unit-bearing field by factor. N, CV and HasSpread
// are unit-free and left untouched.
func (s Summary) Scale(factor float64) Summary {
	s.Mean *= factor
	s.StdDev *= factor
	s.Min *= factor
	s.Max *= factor
	s.Median *= factor
	return s
}

// FromDurations converts ds to floats counted in unit (e.g. time.Millisecond).
func FromDurations(ds []time.Duration, unit time.Duration) []float64 {
	if unit <= 0 {
		unit = time.Second
	}
	xs := make([]float64, len(ds))
	for i, d := range ds {
		xs[i] = float64(d) / float64(unit)
	}
	return xs
}
