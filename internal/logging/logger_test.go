package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("workload", "sieve"), "workload", "sieve"},
		{"Int", Int("runs", 100), "runs", 100},
		{"Uint64", Uint64("iterations", 10000000), "iterations", uint64(10000000)},
		{"Float64", Float64("mean_ms", 3.25), "mean_ms", 3.25},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}

	testErr := errors.New("test error")
	if f := Err(testErr); f.Key != "error" || f.Value != testErr {
		t.Errorf("Err() = %+v, want key error with the given value", f)
	}
}

// TestNewLogger tests the custom logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "harness")

	logger.Info("run completed")
	output := buf.String()

	if !strings.Contains(output, "harness") {
		t.Errorf("NewLogger should include component field, got: %s", output)
	}
	if !strings.Contains(output, "run completed") {
		t.Errorf("NewLogger should include message, got: %s", output)
	}
}

func TestNewDefaultAndNopLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
	// Nop must accept every call without writing anywhere.
	l := NewNopLogger()
	l.Info("ignored", Int("n", 1))
	l.Error("ignored", errors.New("x"))
}

func TestNewConsoleLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "cli", zerolog.WarnLevel)

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got: %s", buf.String())
	}
	logger.Error("shown", errors.New("disk full"))
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("error should pass the warn level, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestZerologAdapter_Error tests the Error method.
func TestZerologAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		err      error
		fields   []Field
		contains []string
	}{
		{
			name:     "with error",
			msg:      "benchmark failed",
			err:      errors.New("context canceled"),
			contains: []string{"benchmark failed", "context canceled", "error"},
		},
		{
			name:     "with nil error",
			msg:      "warning",
			contains: []string{"warning", "error"},
		},
		{
			name:     "with error and fields",
			msg:      "self-check failed",
			err:      errors.New("mismatch"),
			fields:   []Field{String("oracle", "trial-division"), Int("n", 25)},
			contains: []string{"self-check failed", "mismatch", "trial-division", "25"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Error(tt.msg, tt.err, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Debug tests the Debug method.
func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.DebugLevel)
	logger := NewZerologAdapter(zl)

	logger.Debug("sample recorded", Int("run", 3))

	output := buf.String()
	if !strings.Contains(output, "sample recorded") || !strings.Contains(output, "debug") {
		t.Errorf("Debug output should contain message and level, got: %s", output)
	}
}

func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("run %d of %d", 4, 10)
	logger.Println("pinned", "cpu")

	output := buf.String()
	if !strings.Contains(output, "run 4 of 10") {
		t.Errorf("Printf should format message, got: %s", output)
	}
	if !strings.Contains(output, "pinned cpu") {
		t.Errorf("Println should join arguments, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Info("test", tt.field)

			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "Info with fields",
			log:      func(l Logger) { l.Info("run done", String("workload", "sieve")) },
			contains: []string{"[INFO]", "run done", "workload", "sieve"},
		},
		{
			name:     "Debug",
			log:      func(l Logger) { l.Debug("trace", Int("line", 42)) },
			contains: []string{"[DEBUG]", "trace", "42"},
		},
		{
			name:     "Error",
			log:      func(l Logger) { l.Error("failed", errors.New("boom"), String("db", "none")) },
			contains: []string{"[ERROR]", "failed", "boom", "none"},
		},
		{
			name:     "Printf",
			log:      func(l Logger) { l.Printf("value is %d", 123) },
			contains: []string{"value is 123"},
		},
		{
			name:     "Println",
			log:      func(l Logger) { l.Println("a", "b", "c") },
			contains: []string{"a b c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))
			tt.log(adapter)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestLoggerInterface verifies both adapters implement the Logger interface.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
}
