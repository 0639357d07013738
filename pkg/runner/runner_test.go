package runner

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunmann/vecbench/internal/logctx"
	"github.com/eunmann/vecbench/pkg/benchutil"
	"github.com/eunmann/vecbench/pkg/workload"
)

func TestNewSelectsAllByDefault(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	assert.Len(t, r.Targets(), 24)
}

func TestNewFilter(t *testing.T) {
	r, err := New(Options{Filter: regexp.MustCompile(`^SmallVec .* large$`)})
	require.NoError(t, err)

	var names []string
	for _, tg := range r.Targets() {
		names = append(names, tg.Name())
	}
	assert.Equal(t, []string{
		"SmallVec push large",
		"SmallVec random access large",
		"SmallVec remove large",
		"SmallVec clone large",
	}, names)
}

func TestNewFilterMatchesNothing(t *testing.T) {
	_, err := New(Options{Filter: regexp.MustCompile(`LinkedList`)})
	assert.ErrorIs(t, err, ErrNoTargets)
}

func fakeBench(n int) benchFunc {
	return func(workload.Target) (testing.BenchmarkResult, error) {
		return testing.BenchmarkResult{N: n, T: 1000 * 1000}, nil
	}
}

func TestRunCollectsResultsInOrder(t *testing.T) {
	r, err := New(Options{Filter: regexp.MustCompile(`^Vec `), NoSettle: true})
	require.NoError(t, err)
	r.bench = fakeBench(1000)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Results, 8)
	assert.NotEmpty(t, rep.RunID)

	first := rep.Results[0]
	assert.Equal(t, "Vec push small", first.Target)
	assert.Equal(t, "Vec", first.Variant)
	assert.Equal(t, "push", first.Workload)
	assert.Equal(t, "small", first.SizeClass)
	assert.Equal(t, benchutil.SmallSize, first.Elements)
	assert.Equal(t, 1000, first.Iterations)
	assert.InDelta(t, 1000.0, first.NsPerOp, 0.001)
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	r, err := New(Options{Filter: regexp.MustCompile(`^EcoVec `), NoSettle: true})
	require.NoError(t, err)

	boom := errors.New("boom")
	calls := 0
	r.bench = func(workload.Target) (testing.BenchmarkResult, error) {
		calls++
		if calls == 3 {
			return testing.BenchmarkResult{}, boom
		}
		return testing.BenchmarkResult{N: 1, T: 1}, nil
	}

	rep, err := r.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
	assert.Len(t, rep.Results, 2)
}

func TestRunStopsWhenCanceled(t *testing.T) {
	r, err := New(Options{NoSettle: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r.bench = func(workload.Target) (testing.BenchmarkResult, error) {
		calls++
		cancel()
		return testing.BenchmarkResult{N: 1, T: 1}, nil
	}

	rep, err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Len(t, rep.Results, 1)
}

func TestRunInvalidBenchTime(t *testing.T) {
	r, err := New(Options{BenchTime: "soon", NoSettle: true})
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	assert.Error(t, err)
}

func TestRunMeasuresRealTarget(t *testing.T) {
	prev := benchutil.BenchTime()
	t.Cleanup(func() { _ = benchutil.SetBenchTime(prev) })

	r, err := New(Options{
		Filter:    regexp.MustCompile(`^EcoVec clone small$`),
		BenchTime: "10x",
	})
	require.NoError(t, err)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, "10x", rep.BenchTime)
	assert.Positive(t, rep.Results[0].Iterations)
}

func TestRunTagsTargetLogs(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	r, err := New(Options{Filter: regexp.MustCompile(`^SmallVec push large$`), NoSettle: true})
	require.NoError(t, err)
	r.bench = fakeBench(10)

	var buf bytes.Buffer
	ctx := logctx.WithLogger(context.Background(), zerolog.New(&buf))
	_, err = r.Run(ctx)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"event":"target_started"`)
	assert.Contains(t, out, `"event":"target_completed"`)
	assert.Contains(t, out, `"target":"SmallVec push large"`)
	assert.Contains(t, out, `"elements":10000`)
}
