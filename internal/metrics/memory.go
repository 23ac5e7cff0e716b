package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from OS
	Mallocs      uint64 // cumulative heap objects allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryDelta is the difference between two snapshots taken around a benchmark.
type MemoryDelta struct {
	HeapAlloc    int64  `json:"heap_alloc_bytes"`
	TotalAlloc   uint64 `json:"total_alloc_bytes"`
	Mallocs      uint64 `json:"mallocs"`
	NumGC        uint32 `json:"gc_cycles"`
	PauseTotalNs uint64 `json:"gc_pause_ns"`
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics. It stops the world briefly, so
// callers take snapshots outside timed regions.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Delta returns after minus s. Cumulative counters never decrease; HeapAlloc
// may, so it is signed.
func (s MemorySnapshot) Delta(after MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		HeapAlloc:    int64(after.HeapAlloc) - int64(s.HeapAlloc),
		TotalAlloc:   after.TotalAlloc - s.TotalAlloc,
		Mallocs:      after.Mallocs - s.Mallocs,
		NumGC:        after.NumGC - s.NumGC,
		PauseTotalNs: after.PauseTotalNs - s.PauseTotalNs,
	}
}
