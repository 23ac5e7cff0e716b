package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long       string   // long flag name without "--" (e.g., "runs")
	Short      string   // short flag without "-" (e.g., "r")
	Help       string   // description text
	Values     []string // suggested completion values (nil = boolean/no suggestions)
	ValueName  string   // label for the value in zsh (e.g., "number", "duration")
	IsFile     bool     // true if the flag takes a file path
	IsWorkload bool     // true if values come from the workload registry
	Section    string   // fish comment section
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Long: "workload", Short: "w", Help: "Workload to time", IsWorkload: true, ValueName: "workload", Section: "Benchmark"},
	{Long: "runs", Short: "r", Help: "Number of timed runs", Values: []string{"10", "30", "100"}, ValueName: "number", Section: "Benchmark"},
	{Long: "iterations", Short: "k", Help: "Inner iterations per run", ValueName: "number", Section: "Benchmark"},
	{Long: "start", Help: "Initial counter of the prime scan", ValueName: "number", Section: "Benchmark"},
	{Long: "timeout", Help: "Maximum session duration", Values: []string{"1m", "5m", "10m", "30m", "1h"}, ValueName: "duration", Section: "Benchmark"},
	{Long: "gc", Help: "Garbage collector handling", Values: []string{"default", "collect", "disabled"}, ValueName: "mode", Section: "Benchmark"},
	{Long: "pin-cpu", Help: "Pin the benchmark thread to a CPU", ValueName: "cpu", Section: "Benchmark"},
	{Long: "verify", Help: "Cross-check the primality predicate first", Section: "Benchmark"},
	{Long: "verify-limit", Help: "Upper bound of the self-check", ValueName: "number", Section: "Benchmark"},
	{Long: "verify-workers", Help: "Goroutines used by the self-check", ValueName: "number", Section: "Benchmark"},
	{Long: "unit", Help: "Reporting unit", Values: []string{"ms", "s", "us"}, ValueName: "unit", Section: "Output options"},
	{Long: "precision", Help: "Decimals in summary lines", ValueName: "number", Section: "Output options"},
	{Long: "spread", Help: "Always report stdev and CV", Section: "Output options"},
	{Long: "print-primes", Help: "Print primes found by the prime scan", Section: "Output options"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts", Section: "Output options"},
	{Long: "verbose", Short: "v", Help: "Show per-run samples", Section: "Output options"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output options"},
	{Long: "tui", Help: "Interactive dashboard", Section: "Output options"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light"}, ValueName: "theme", Section: "Output options"},
	{Long: "output", Short: "o", Help: "JSON report file", IsFile: true, ValueName: "file", Section: "Output options"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics on this address", ValueName: "address", Section: "Observability"},
	{Long: "metrics-file", Help: "Prometheus textfile export", IsFile: true, ValueName: "file", Section: "Observability"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Observability"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Completion"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh",
// "fish" or "powershell"). workloads lists the registered workload names.
func GenerateCompletion(out io.Writer, shell string, workloads []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, workloads)
	case "zsh":
		return generateZshCompletion(out, workloads)
	case "fish":
		return generateFishCompletion(out, workloads)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, workloads)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

func flagPatterns(f FlagCompletion) []string {
	var p []string
	if f.Long != "" {
		p = append(p, "--"+f.Long)
	}
	if f.Short != "" {
		p = append(p, "-"+f.Short)
	}
	return p
}

func generateBashCompletion(out io.Writer, workloads []string) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, flagPatterns(f)...)
	}

	var caseBody strings.Builder
	writeCase := func(patterns []string, body string) {
		fmt.Fprintf(&caseBody, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(patterns, "|"), body)
	}
	var filePatterns []string
	for _, f := range flagRegistry {
		switch {
		case f.IsWorkload:
			writeCase(flagPatterns(f), `COMPREPLY=( $(compgen -W "${workloads}" -- "${cur}") )`)
		case f.IsFile:
			filePatterns = append(filePatterns, flagPatterns(f)...)
		case len(f.Values) > 0:
			writeCase(flagPatterns(f), fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}

	script := fmt.Sprintf(`# Bash completion script for microbench
# Add this to your ~/.bashrc or ~/.bash_completion

_microbench_completions() {
    local cur prev opts workloads
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    workloads="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _microbench_completions microbench
`, strings.Join(opts, " "), strings.Join(workloads, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, workloads []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef microbench

# Zsh completion script for microbench
# Add this to your ~/.zshrc or place in $fpath

_microbench() {
    local -a workloads
    workloads=(%s all)

    _arguments -s \
%s
}

_microbench "$@"
`, strings.Join(workloads, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats f as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsWorkload:
		valueSuffix = fmt.Sprintf(":%s:($workloads)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer, workloads []string) error {
	lines := []string{
		"# Fish completion script for microbench",
		"# Add this to ~/.config/fish/completions/microbench.fish",
		"",
		"# Disable file completion by default",
		"complete -c microbench -f",
	}

	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, strings.Join(workloads, " ")))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats f as a fish complete command.
func fishCompleteLine(f FlagCompletion, workloadList string) string {
	parts := []string{"complete -c microbench"}
	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsWorkload:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", workloadList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func generatePowerShellCompletion(out io.Writer, workloads []string) error {
	var optionEntries []string
	for _, f := range flagRegistry {
		for _, p := range flagPatterns(f) {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '%s'; Description = '%s' }", p, f.Help))
		}
	}

	quote := func(vals []string) string {
		q := make([]string, len(vals))
		for i, v := range vals {
			q[i] = fmt.Sprintf("'%s'", v)
		}
		return strings.Join(q, ", ")
	}

	var switchEntries []string
	for _, f := range flagRegistry {
		var source string
		switch {
		case f.IsWorkload:
			source = "$microbenchWorkloads"
		case !f.IsFile && len(f.Values) > 0:
			source = fmt.Sprintf("@(%s)", quote(f.Values))
		default:
			continue
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, source))
	}

	script := fmt.Sprintf(`# PowerShell completion script for microbench
# Add this to your $PROFILE

$microbenchWorkloads = @(%s)

Register-ArgumentCompleter -CommandName 'microbench' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, quote(append(append([]string{}, workloads...), "all")), strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
