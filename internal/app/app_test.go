package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/microbench/internal/config"
	apperrors "github.com/agbru/microbench/internal/errors"
	"github.com/agbru/microbench/internal/logging"
	"github.com/agbru/microbench/internal/sysmon"
	"github.com/agbru/microbench/internal/workload"
)

// slowWorkload sleeps on every run so that short timeouts fire.
type slowWorkload struct{ delay time.Duration }

func (slowWorkload) Name() string              { return "slow" }
func (slowWorkload) Description() string       { return "sleeps" }
func (slowWorkload) DefaultIterations() uint64 { return 1 }
func (slowWorkload) ReportsSpread() bool       { return false }
func (s slowWorkload) Run(iterations uint64) workload.Outcome {
	time.Sleep(s.delay)
	return workload.Outcome{Iterations: iterations}
}

func stubHost(t *testing.T) {
	t.Helper()
	orig := hostInfo
	hostInfo = func(context.Context) sysmon.Host {
		return sysmon.Host{LogicalCPUs: 1, GOOS: "linux", GOARCH: "amd64", GoVersion: "go1.25"}
	}
	t.Cleanup(func() { hostInfo = orig })
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		app, err := New([]string{"microbench"}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if app.Config.Workload != config.DefaultWorkload || app.Config.Runs != config.DefaultRuns {
			t.Errorf("unexpected defaults: %+v", app.Config)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"microbench", "--help"}, &bytes.Buffer{})
		if !IsHelpError(err) {
			t.Fatalf("expected help error, got %v", err)
		}
	})

	t.Run("unknown flag is a config error", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"microbench", "--bogus"}, &bytes.Buffer{})
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %T %v", err, err)
		}
		if code := apperrors.ExitCodeFor(err); code != apperrors.ExitErrorConfig {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
		}
	})

	t.Run("unknown workload", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"microbench", "-w", "nope"}, &bytes.Buffer{})
		if err == nil {
			t.Fatal("expected an error for an unknown workload")
		}
	})
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-w", "sieve"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "microbench "+Version) {
		t.Errorf("unexpected version output: %q", buf.String())
	}
}

func TestRunQuietWritesOutputs(t *testing.T) {
	stubHost(t)
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "out", "report.json")
	metricsPath := filepath.Join(dir, "bench.prom")

	app, err := New([]string{"microbench", "-w", "fibonacci", "-r", "3", "-k", "10", "-q",
		"-o", reportPath, "--metrics-file", metricsPath}, &bytes.Buffer{},
		WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	if !strings.HasPrefix(out.String(), "fibonacci ") {
		t.Errorf("quiet output should start with the workload name, got %q", out.String())
	}

	report, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	for _, want := range []string{`"name": "fibonacci"`, `"t1": 55`, `"runs": 3`} {
		if !strings.Contains(string(report), want) {
			t.Errorf("report missing %s:\n%s", want, report)
		}
	}

	prom, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	if !strings.Contains(string(prom), "fibonacci") {
		t.Errorf("metrics textfile does not mention the workload:\n%s", prom)
	}
}

func TestRunPrimeScanCount(t *testing.T) {
	stubHost(t)
	app, err := New([]string{"microbench", "-w", "prime-scan", "-r", "2", "-k", "100000", "-q", "--spread"},
		&bytes.Buffer{}, WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	fields := strings.Fields(out.String())
	if len(fields) != 4 || fields[0] != "prime-scan" {
		t.Errorf("quiet output with spread = %q, want name mean stdev cv", out.String())
	}
}

func TestRunVerify(t *testing.T) {
	stubHost(t)
	app, err := New([]string{"microbench", "-w", "sieve", "-r", "1", "-q",
		"--verify", "--verify-limit", "5000", "--verify-workers", "2"},
		&bytes.Buffer{}, WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
}

func TestRunTimeout(t *testing.T) {
	stubHost(t)
	factory := workload.NewRegistry(workload.Options{})
	if err := factory.Register("slow", func(workload.Options) workload.Workload {
		return slowWorkload{delay: 50 * time.Millisecond}
	}); err != nil {
		t.Fatal(err)
	}

	var errOut bytes.Buffer
	app, err := New([]string{"microbench", "-w", "slow", "-r", "100", "-q", "--timeout", "20ms"},
		&errOut, WithFactory(factory), WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorTimeout {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
}

func TestRunCompletion(t *testing.T) {
	t.Parallel()
	app, err := New([]string{"microbench", "--completion", "bash"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "prime-scan") {
		t.Errorf("bash completion should list workloads:\n%s", out.String())
	}
}
