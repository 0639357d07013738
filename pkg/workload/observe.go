package workload

import "github.com/eunmann/vecbench/pkg/seq"

// Package-level sinks. Stores to them cannot be eliminated, which keeps the
// compiler from dropping the work that produced the value.
var (
	intSink int
	seqSink seq.Sequence[int]
)

// Observe passes v through a sink and returns it.
func Observe(v int) int {
	intSink = v
	return v
}

// Keep passes s through a sink.
func Keep(s seq.Sequence[int]) {
	seqSink = s
}
