package sysmon

import (
	"context"
	"runtime"
	"testing"
	"time"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample(context.Background())
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestStats_Busy(t *testing.T) {
	t.Parallel()
	if (Stats{CPUPercent: 10}).Busy() {
		t.Error("10% reported busy")
	}
	if !(Stats{CPUPercent: 90}).Busy() {
		t.Error("90% not reported busy")
	}
}

func TestDescribeHost(t *testing.T) {
	h := DescribeHost(context.Background())
	if h.LogicalCPUs < 1 {
		t.Errorf("LogicalCPUs = %d", h.LogicalCPUs)
	}
	if h.GOOS != runtime.GOOS || h.GOARCH != runtime.GOARCH {
		t.Errorf("platform = %s/%s", h.GOOS, h.GOARCH)
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := Watch(ctx, 10*time.Millisecond)

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no sample received")
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestPinCPU(t *testing.T) {
	restore, err := PinCPU(-1)
	if err != nil {
		t.Fatalf("PinCPU(-1): %v", err)
	}
	restore()

	if !PinningSupported() {
		t.Skip("CPU pinning not supported on this platform")
	}
	if _, err := PinCPU(1 << 20); err == nil {
		t.Error("PinCPU beyond the affinity set should fail")
	}
	restore, err = PinCPU(0)
	if err != nil {
		t.Skipf("pinning not permitted here: %v", err)
	}
	restore()
}
