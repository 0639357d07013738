// Package benchutil holds the knobs shared by the benchmark targets and the
// standalone runner.
package benchutil

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
)

// SkipIfNoLongBench skips the benchmark if VECBENCH_LONG_BENCH is not set.
// Use this to gate long-running benchmarks that shouldn't run by default.
func SkipIfNoLongBench(b *testing.B) {
	if os.Getenv(LongBenchEnv) == "" {
		b.Skip("set " + LongBenchEnv + "=1 to run scaling benchmark")
	}
}

var initOnce sync.Once

// SetBenchTime sets the per-target measurement budget used by
// testing.Benchmark outside of `go test`. It accepts the same syntax as
// -test.benchtime: a duration ("500ms") or an iteration count ("100x").
func SetBenchTime(v string) error {
	initOnce.Do(testing.Init)
	if err := flag.Set("test.benchtime", v); err != nil {
		return fmt.Errorf("set benchtime %q: %w", v, err)
	}
	return nil
}

// BenchTime returns the current -test.benchtime setting.
func BenchTime() string {
	initOnce.Do(testing.Init)
	f := flag.Lookup("test.benchtime")
	if f == nil {
		return ""
	}
	return f.Value.String()
}
