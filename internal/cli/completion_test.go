package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	workloads := []string{"fibonacci", "prime-scan"}

	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"_microbench_completions", "--workload", `workloads="fibonacci prime-scan all"`, "--gc)", "compgen -f"}},
		{"zsh", []string{"#compdef microbench", "'(-w --workload)'{-w,--workload}'[Workload to time]:workload:($workloads)'", ":unit:(ms s us)"}},
		{"fish", []string{"complete -c microbench -s r -l runs", "-xa 'fibonacci prime-scan all'", "# Observability"}},
		{"powershell", []string{"Register-ArgumentCompleter", "'fibonacci', 'prime-scan', 'all'", "'--log-level'"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, workloads); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}

	if err := GenerateCompletion(&bytes.Buffer{}, "tcsh", workloads); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestFlagRegistryHasNoDuplicates(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		for _, p := range flagPatterns(f) {
			if seen[p] {
				t.Errorf("duplicate flag %s", p)
			}
			seen[p] = true
		}
	}
}
