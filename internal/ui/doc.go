// Package ui provides theme and color support for the benchmark runner's
// user interface. It defines color schemes and ANSI escape helpers shared by
// the CLI presenter and the TUI dashboard, so that business packages never
// deal with terminal styling.
package ui
