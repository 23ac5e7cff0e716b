package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing errors.
// A nil ColorProvider prints without colors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code without printing.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	var mismatch MismatchError
	if errors.As(err, &mismatch) {
		return ExitErrorMismatch
	}
	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		return ExitErrorConfig
	}
	var valErr ValidationError
	if errors.As(err, &valErr) {
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}

// HandleBenchmarkError prints a human-readable description of err to out and
// returns the exit code matching the error class.
//
// Parameters:
//   - err: The error returned by a benchmark (nil means success).
//   - duration: The time spent before the failure; printed when non-zero.
//   - out: The writer for the message.
//   - colors: The color provider; nil disables colors.
//
// Returns:
//   - int: The exit code for the process.
func HandleBenchmarkError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration.Round(time.Microsecond))
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The run limit was exceeded%s.%s\n", colors.Red(), suffix, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), suffix, colors.Reset())
	case ExitErrorMismatch:
		fmt.Fprintf(out, "%sStatus: Self-check failed: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
