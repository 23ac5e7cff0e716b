//go:build !linux

package sysmon

// PinCPU is a no-op on platforms without sched_setaffinity.
func PinCPU(cpu int) (restore func(), err error) {
	return func() {}, nil
}

// PinningSupported reports whether PinCPU can restrict affinity here.
func PinningSupported() bool { return false }
