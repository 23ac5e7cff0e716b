package primality

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/microbench/internal/errors"
)

// verifyChunk is the number of consecutive integers checked per task.
const verifyChunk = 4096

// Verify cross-checks IsPrime against the reference oracles for every n in
// [lo, hi]. See VerifyWith.
func Verify(ctx context.Context, lo, hi int64, workers int) error {
	return VerifyWith(ctx, lo, hi, workers, IsPrime)
}

// VerifyWith checks predicate against naive trial division and the
// probabilistic oracle for every n in [lo, hi], splitting the range into
// chunks checked by up to workers goroutines (0 means GOMAXPROCS).
// It returns an apperrors.MismatchError for the first disagreement found, or
// the context error if ctx ends first.
func VerifyWith(ctx context.Context, lo, hi int64, workers int, predicate func(int64) bool) error {
	if hi < lo {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := lo; start <= hi; start += verifyChunk {
		end := start + verifyChunk - 1
		if end > hi || end < start {
			end = hi
		}
		from, to := start, end
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return checkRange(from, to, predicate)
		})
		if end == hi {
			break
		}
	}
	return g.Wait()
}

func checkRange(from, to int64, predicate func(int64) bool) error {
	for n := from; ; n++ {
		got := predicate(n)
		if want := IsPrimeTrialDivision(n); got != want {
			return apperrors.MismatchError{N: n, Got: got, Want: want, Oracle: "trial-division"}
		}
		if want := ProbablyPrime(n); got != want {
			return apperrors.MismatchError{N: n, Got: got, Want: want, Oracle: OracleName}
		}
		if n == to {
			return nil
		}
	}
}
