package metrics

import "testing"

var sink []byte

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemorySnapshot_Delta(t *testing.T) {
	mc := NewMemoryCollector()
	before := mc.Snapshot()

	for i := 0; i < 16; i++ {
		sink = make([]byte, 64*1024)
	}

	d := before.Delta(mc.Snapshot())
	if d.TotalAlloc < 16*64*1024 {
		t.Errorf("TotalAlloc delta = %d, want at least 1 MiB", d.TotalAlloc)
	}
	if d.Mallocs == 0 {
		t.Error("Mallocs delta should be > 0")
	}
}

func TestMemorySnapshot_DeltaSigned(t *testing.T) {
	t.Parallel()
	before := MemorySnapshot{HeapAlloc: 100, TotalAlloc: 10, NumGC: 1}
	after := MemorySnapshot{HeapAlloc: 40, TotalAlloc: 30, NumGC: 3}
	d := before.Delta(after)
	if d.HeapAlloc != -60 || d.TotalAlloc != 20 || d.NumGC != 2 {
		t.Errorf("Delta = %+v", d)
	}
}
