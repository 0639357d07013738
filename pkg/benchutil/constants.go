package benchutil

// Shared constants for benchmarks across packages.

// BenchmarkSeed seeds the index generator of the random-access workload so
// repeated runs draw the same index sequence.
const BenchmarkSeed = 42

// Size classes used by the named benchmark targets.
const (
	SmallSize = 100
	LargeSize = 10_000
)

// ScalingSizes are larger sizes for scaling runs.
// Used with VECBENCH_LONG_BENCH=1 environment variable.
var ScalingSizes = []int{100_000, 250_000}

// LongBenchEnv gates the scaling benchmarks.
const LongBenchEnv = "VECBENCH_LONG_BENCH"
