package format

import (
	"fmt"
	"strings"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Unit is a reporting unit for timing samples.
type Unit struct {
	// Name is the flag value ("ms", "s", "us").
	Name string
	// Label is the human-readable suffix used in summary lines.
	Label string
	// Scale is the duration of one unit.
	Scale time.Duration
}

var (
	Milliseconds = Unit{Name: "ms", Label: "ms", Scale: time.Millisecond}
	Seconds      = Unit{Name: "s", Label: "seconds", Scale: time.Second}
	Microseconds = Unit{Name: "us", Label: "µs", Scale: time.Microsecond}
)

// ParseUnit resolves a unit name. ok is false for unknown names.
func ParseUnit(name string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ms", "":
		return Milliseconds, true
	case "s", "sec", "seconds":
		return Seconds, true
	case "us", "µs", "micro":
		return Microseconds, true
	}
	return Unit{}, false
}

// ToUnit converts d to a float expressed in unit u.
func ToUnit(d time.Duration, u Unit) float64 {
	return float64(d) / float64(u.Scale)
}

// FormatFixed renders v with exactly precision decimals.
func FormatFixed(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return fmt.Sprintf("%.*f", precision, v)
}

// FormatNumberString inserts thousand separators into a decimal string.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(n + n/3 + 1)
	b.WriteString(sign)
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
