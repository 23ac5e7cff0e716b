//go:build linux

package sysmon

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// PinCPU locks the calling goroutine to its OS thread and restricts that
// thread to cpu, which must be in the process's current affinity set. The
// returned function undoes both. A negative cpu is a no-op.
func PinCPU(cpu int) (restore func(), err error) {
	if cpu < 0 {
		return func() {}, nil
	}

	runtime.LockOSThread()
	var previous unix.CPUSet
	if err := unix.SchedGetaffinity(0, &previous); err != nil {
		runtime.UnlockOSThread()
		return func() {}, fmt.Errorf("read cpu affinity: %w", err)
	}
	if !previous.IsSet(cpu) {
		runtime.UnlockOSThread()
		return func() {}, fmt.Errorf("cpu %d is not in the allowed affinity set (%d cpus)", cpu, previous.Count())
	}

	var set unix.CPUSet
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return func() {}, fmt.Errorf("pin to cpu %d: %w", cpu, err)
	}

	return func() {
		_ = unix.SchedSetaffinity(0, &previous)
		runtime.UnlockOSThread()
	}, nil
}

// PinningSupported reports whether PinCPU can restrict affinity here.
func PinningSupported() bool { return true }
