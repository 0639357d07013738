// Package memdiag reads runtime memory statistics and settles the heap
// between benchmark targets so one target's garbage is not collected on the
// next target's clock.
//
// Settle logs at debug level; VECBENCH_MEM_DEBUG=1 raises it to info.
package memdiag

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/eunmann/vecbench/pkg/humanfmt"
)

// DebugEnv raises heap-settle logging to info level.
const DebugEnv = "VECBENCH_MEM_DEBUG"

// Enabled reports whether VECBENCH_MEM_DEBUG=1 is set.
func Enabled() bool {
	return os.Getenv(DebugEnv) == "1"
}

// Stats is the subset of runtime.MemStats the runner reports.
type Stats struct {
	HeapAlloc  uint64 // live heap bytes
	HeapSys    uint64 // heap bytes obtained from the OS
	TotalAlloc uint64 // cumulative bytes allocated
	Mallocs    uint64 // cumulative heap objects allocated
	NumGC      uint32
}

// Read samples the runtime memory statistics.
func Read() Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Stats{
		HeapAlloc:  m.HeapAlloc,
		HeapSys:    m.HeapSys,
		TotalAlloc: m.TotalAlloc,
		Mallocs:    m.Mallocs,
		NumGC:      m.NumGC,
	}
}

// Freed returns how much live heap shrank from s to after, or 0 if it grew.
func (s Stats) Freed(after Stats) uint64 {
	if after.HeapAlloc >= s.HeapAlloc {
		return 0
	}
	return s.HeapAlloc - after.HeapAlloc
}

// Settle forces a garbage collection, logs what it freed and returns the
// stats after collection.
func Settle(log zerolog.Logger, reason string) Stats {
	before := Read()
	runtime.GC()
	after := Read()

	e := log.Debug()
	if Enabled() {
		e = log.Info()
	}
	e.Str("reason", reason).
		Str("heap_before", humanfmt.Bytes(int64(before.HeapAlloc))).
		Str("heap_after", humanfmt.Bytes(int64(after.HeapAlloc))).
		Str("freed", humanfmt.Bytes(int64(before.Freed(after)))).
		Str("heap_sys", humanfmt.Bytes(int64(after.HeapSys))).
		Uint32("num_gc", after.NumGC).
		Msg("heap settled")
	return after
}
