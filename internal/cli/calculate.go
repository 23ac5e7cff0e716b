package cli

import (
	"fmt"
	"io"

	"github.com/agbru/microbench/internal/config"
	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/sysmon"
	"github.com/agbru/microbench/internal/ui"
	"github.com/agbru/microbench/internal/workload"
)

// PrintExecutionConfig displays the run parameters and the host they run on.
func PrintExecutionConfig(cfg config.AppConfig, host sysmon.Host, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	iterations := "workload default"
	if cfg.Iterations > 0 {
		iterations = format.FormatNumberString(fmt.Sprint(cfg.Iterations))
	}
	fmt.Fprintf(out, "Timing %s%d%s runs of %s%s%s iterations with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Runs, ui.ColorReset(),
		ui.ColorMagenta(), iterations, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	cpu := host.CPUModel
	if cpu == "" {
		cpu = "unknown CPU"
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors (%s), %s/%s, Go %s%s%s.\n",
		ui.ColorCyan(), host.LogicalCPUs, ui.ColorReset(), cpu,
		host.GOOS, host.GOARCH, ui.ColorCyan(), host.GoVersion, ui.ColorReset())
	if host.TotalMemory > 0 {
		fmt.Fprintf(out, "Memory: %s%s%s.\n", ui.ColorCyan(), format.FormatBytes(host.TotalMemory), ui.ColorReset())
	}
	pin := "off"
	if cfg.PinCPU != config.NoPin {
		pin = fmt.Sprintf("CPU %d", cfg.PinCPU)
	}
	fmt.Fprintf(out, "GC mode: %s, pinning: %s.\n", cfg.GCMode, pin)
}

// PrintExecutionMode displays whether one workload or a comparison runs.
func PrintExecutionMode(workloads []workload.Workload, out io.Writer) {
	var modeDesc string
	switch len(workloads) {
	case 0:
		modeDesc = "nothing to run"
	case 1:
		modeDesc = fmt.Sprintf("Single benchmark of the %s%s%s workload",
			ui.ColorGreen(), workloads[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Sequential comparison of %d workloads", len(workloads))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// PrintBusyWarning warns that the host is loaded before timing starts.
func PrintBusyWarning(s sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "%sWarning: host is busy (CPU %.0f%%, memory %.0f%%); timings may be noisy.%s\n",
		ui.ColorYellow(), s.CPUPercent, s.MemPercent, ui.ColorReset())
}
