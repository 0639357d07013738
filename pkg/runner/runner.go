// Package runner drives the benchmark targets outside of `go test`: it
// selects targets, runs them one after another through testing.Benchmark and
// collects a report.
package runner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/eunmann/vecbench/internal/logctx"
	"github.com/eunmann/vecbench/pkg/benchutil"
	"github.com/eunmann/vecbench/pkg/hostinfo"
	"github.com/eunmann/vecbench/pkg/logging"
	"github.com/eunmann/vecbench/pkg/memdiag"
	"github.com/eunmann/vecbench/pkg/report"
	"github.com/eunmann/vecbench/pkg/workload"
)

// ErrNoTargets is returned when the filter matches no target.
var ErrNoTargets = errors.New("no benchmark targets match the filter")

// Options configures a run.
type Options struct {
	// Filter selects targets by name. Nil selects all targets.
	Filter *regexp.Regexp

	// BenchTime overrides the per-target measurement budget, in
	// -test.benchtime syntax ("1s", "100x"). Empty keeps the current value.
	BenchTime string

	// NoSettle skips the forced GC between targets.
	NoSettle bool
}

type benchFunc func(workload.Target) (testing.BenchmarkResult, error)

// Runner executes a fixed list of targets.
type Runner struct {
	opts    Options
	targets []workload.Target
	bench   benchFunc
}

// New selects the targets matching opts.Filter.
func New(opts Options) (*Runner, error) {
	targets := Select(workload.Targets(), opts.Filter)
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTargets, opts.Filter)
	}
	return &Runner{
		opts:    opts,
		targets: targets,
		bench:   workload.Target.Benchmark,
	}, nil
}

// Select returns the targets whose name matches re, in their original order.
func Select(targets []workload.Target, re *regexp.Regexp) []workload.Target {
	if re == nil {
		return targets
	}
	var out []workload.Target
	for _, t := range targets {
		if re.MatchString(t.Name()) {
			out = append(out, t)
		}
	}
	return out
}

// Targets returns the selected targets.
func (r *Runner) Targets() []workload.Target {
	return r.targets
}

// Run measures every selected target in order. The first failing target
// aborts the run; the returned report then holds the results gathered so
// far. Cancellation is checked between targets.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	if r.opts.BenchTime != "" {
		if err := benchutil.SetBenchTime(r.opts.BenchTime); err != nil {
			return nil, err
		}
	}

	rep := report.New(benchutil.BenchTime(), hostinfo.Collect())
	ctx = logctx.WithStr(ctx, "run_id", rep.RunID)
	log := logctx.FromContext(ctx)

	log.Info().
		Int("targets", len(r.targets)).
		Str("bench_time", rep.BenchTime).
		Str("go_version", rep.Host.GoVersion).
		Int("cpus", rep.Host.CPUs).
		Msg("starting benchmark run")

	pt := logging.NewProgressTracker(int64(len(r.targets)))
	for _, t := range r.targets {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("run canceled after %d of %d targets: %w", pt.Completed(), pt.Total(), err)
		}

		tctx := logctx.WithInt(logctx.WithTarget(ctx, t.Name()), "elements", t.Size.N)
		tlog := logctx.FromContext(tctx)
		if !r.opts.NoSettle {
			memdiag.Settle(tlog, "before_target")
		}
		logging.TargetStarted(tlog).
			Str("variant", t.Variant.Name).
			Str("workload", t.Kind.String()).
			Int64("completed_before", pt.Completed()).
			LogDebug("starting target")

		start := time.Now()
		br, err := r.bench(t)
		elapsed := time.Since(start)
		if err != nil {
			tlog.Error().Err(err).Msg("target failed")
			return rep, fmt.Errorf("run aborted: %w", err)
		}
		pt.RecordCompletion(elapsed)

		res := report.Result{
			Target:    t.Name(),
			Variant:   t.Variant.Name,
			Workload:  t.Kind.String(),
			SizeClass: t.Size.Name,
			Elements:  t.Size.N,
		}.Measure(br)
		rep.Add(res)

		logging.TargetComplete(tlog, elapsed).
			Count("iterations", int64(res.Iterations)).
			NsPerOp("ns_per_op", res.NsPerOp).
			Bytes("bytes_per_op", res.BytesPerOp).
			Int64("allocs_per_op", res.AllocsPerOp).
			ProgressFromTracker(pt).
			Log("target finished")
	}

	logging.RunComplete(log, pt.Elapsed()).
		Int("targets", len(r.targets)).
		Log("benchmark run finished")
	return rep, nil
}
