package workload

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/eunmann/vecbench/pkg/benchutil"
	"github.com/eunmann/vecbench/pkg/seq"
)

// ErrEmptySize is returned by random access targets sized at zero or fewer
// elements, where no index can be drawn.
var ErrEmptySize = errors.New("empty size class")

// Run executes the target under b. A container error aborts the benchmark.
func (t Target) Run(b *testing.B) {
	b.Helper()
	b.ReportAllocs()
	if err := t.run(b); err != nil {
		b.Fatalf("%s: %v", t.Name(), err)
	}
}

// Benchmark runs the target through testing.Benchmark, for use outside of
// `go test`. It returns the error that aborted the target, if any.
func (t Target) Benchmark() (testing.BenchmarkResult, error) {
	var runErr error
	res := testing.Benchmark(func(b *testing.B) {
		b.ReportAllocs()
		if err := t.run(b); err != nil {
			runErr = err
			b.FailNow()
		}
	})
	if runErr != nil {
		return res, fmt.Errorf("%s: %w", t.Name(), runErr)
	}
	if res.N == 0 {
		return res, fmt.Errorf("%s: benchmark did not complete", t.Name())
	}
	return res, nil
}

func (t Target) run(b *testing.B) error {
	n := t.Size.N
	newSeq := t.Variant.New
	switch t.Kind {
	case Push:
		return benchPush(b, newSeq, n)
	case RandomAccess:
		return benchRandomAccess(b, newSeq, n)
	case Remove:
		return benchRemove(b, newSeq, n)
	case Clone:
		return benchClone(b, newSeq, n)
	default:
		return fmt.Errorf("unknown workload %v", t.Kind)
	}
}

// Populate returns a new container holding 0..n-1.
func Populate(newSeq seq.Factory[int], n int) seq.Sequence[int] {
	s := newSeq()
	for i := range n {
		s.Push(i)
	}
	return s
}

func benchPush(b *testing.B, newSeq seq.Factory[int], n int) error {
	for range b.N {
		s := newSeq()
		for i := range n {
			s.Push(Observe(i))
		}
		Keep(s)
		s.Release()
	}
	return nil
}

func benchRandomAccess(b *testing.B, newSeq seq.Factory[int], n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: random access needs at least one element, got %d", ErrEmptySize, n)
	}
	s := Populate(newSeq, n)
	defer s.Release()
	rng := rand.New(rand.NewPCG(benchutil.BenchmarkSeed, benchutil.BenchmarkSeed))

	b.ResetTimer()
	for range b.N {
		v, err := s.Get(rng.IntN(n))
		if err != nil {
			return err
		}
		Observe(v)
	}
	return nil
}

func benchRemove(b *testing.B, newSeq seq.Factory[int], n int) error {
	for range b.N {
		s := Populate(newSeq, n)
		for range n {
			v, err := s.Remove(Observe(0))
			if err != nil {
				return err
			}
			Observe(v)
		}
		s.Release()
	}
	return nil
}

func benchClone(b *testing.B, newSeq seq.Factory[int], n int) error {
	s := Populate(newSeq, n)
	defer s.Release()

	b.ResetTimer()
	for range b.N {
		c := s.Clone()
		Keep(c)
		c.Release()
	}
	return nil
}
