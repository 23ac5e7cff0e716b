package harness

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// GCMode controls the garbage collector while a benchmark runs.
type GCMode string

const (
	// GCModeDefault leaves the collector alone.
	GCModeDefault GCMode = "default"
	// GCModeCollect forces a collection before every run, outside the timed
	// region, so that each run starts from a comparable heap.
	GCModeCollect GCMode = "collect"
	// GCModeDisabled turns the collector off for the whole benchmark, with a
	// soft memory limit as a safety net.
	GCModeDisabled GCMode = "disabled"
)

// ParseGCMode validates a mode name. The empty string means GCModeDefault.
func ParseGCMode(s string) (GCMode, error) {
	switch m := GCMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return GCModeDefault, nil
	case GCModeDefault, GCModeCollect, GCModeDisabled:
		return m, nil
	}
	return "", fmt.Errorf("unknown gc mode %q (want default, collect or disabled)", s)
}

// memoryLimitFactor bounds heap growth while the collector is disabled,
// relative to the memory obtained from the OS at Begin.
const memoryLimitFactor = 4

// gcController applies a GCMode around a benchmark.
type gcController struct {
	mode                GCMode
	originalGCPercent   int
	originalMemoryLimit int64
}

func newGCController(mode GCMode) *gcController {
	if mode == "" {
		mode = GCModeDefault
	}
	return &gcController{mode: mode}
}

// Begin is called once before the first run.
func (gc *gcController) Begin() {
	if gc.mode != GCModeDisabled {
		return
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	runtime.GC()
	gc.originalGCPercent = debug.SetGCPercent(-1)
	// A negative input only reads the current limit.
	gc.originalMemoryLimit = debug.SetMemoryLimit(-1)
	if limit := int64(m.Sys) * memoryLimitFactor; limit > 0 {
		debug.SetMemoryLimit(min(limit, gc.originalMemoryLimit))
	}
}

// BeforeRun is called before each run's start reading.
func (gc *gcController) BeforeRun() {
	if gc.mode == GCModeCollect {
		runtime.GC()
	}
}

// End restores the collector settings changed by Begin.
func (gc *gcController) End() {
	if gc.mode != GCModeDisabled {
		return
	}
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(gc.originalMemoryLimit)
	runtime.GC()
}
