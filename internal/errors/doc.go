// Package apperrors defines structured application error types for the
// benchmark runner, allowing a clear distinction between error classes
// (configuration, benchmark execution, verification) while carrying the
// underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All wrapping error types implement Unwrap() to support errors.Is() and errors.As().
package apperrors
