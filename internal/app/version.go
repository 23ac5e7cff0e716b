package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build metadata, set with -ldflags "-X github.com/agbru/microbench/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the build metadata to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "microbench %s\n", Version)
	fmt.Fprintf(out, "  commit:  %s\n", Commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
