package logging

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eunmann/vecbench/pkg/humanfmt"
)

// etaWindow is how many recent target durations the ETA averages over.
const etaWindow = 8

// ProgressTracker counts finished benchmark targets and estimates the time
// left from a moving average of recent target durations.
type ProgressTracker struct {
	start time.Time
	total int64

	mu        sync.Mutex
	completed int64
	window    [etaWindow]time.Duration
	filled    int
	next      int
}

// NewProgressTracker starts tracking total targets.
func NewProgressTracker(total int64) *ProgressTracker {
	return &ProgressTracker{start: time.Now(), total: total}
}

// RecordCompletion marks one target finished after d.
func (pt *ProgressTracker) RecordCompletion(d time.Duration) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.completed++
	pt.window[pt.next] = d
	pt.next = (pt.next + 1) % etaWindow
	pt.filled = min(pt.filled+1, etaWindow)
}

// Completed returns the number of finished targets.
func (pt *ProgressTracker) Completed() int64 {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return pt.completed
}

// Total returns the number of targets being tracked.
func (pt *ProgressTracker) Total() int64 {
	return pt.total
}

// Elapsed returns the time since tracking started.
func (pt *ProgressTracker) Elapsed() time.Duration {
	return time.Since(pt.start)
}

// Progress is a point-in-time view of a ProgressTracker.
type Progress struct {
	Completed int64
	Total     int64
	ETA       time.Duration
}

// Remaining returns the number of unfinished targets.
func (p Progress) Remaining() int64 {
	return max(p.Total-p.Completed, 0)
}

// Pct returns completion in percent. An empty run is 100% complete.
func (p Progress) Pct() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Completed) * 100 / float64(p.Total)
}

// Snapshot returns the current progress. ETA is zero until the first target
// finishes and once all have.
func (pt *ProgressTracker) Snapshot() Progress {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	p := Progress{Completed: pt.completed, Total: pt.total}
	if pt.filled == 0 || p.Remaining() == 0 {
		return p
	}
	var sum time.Duration
	for _, d := range pt.window[:pt.filled] {
		sum += d
	}
	p.ETA = sum / time.Duration(pt.filled) * time.Duration(p.Remaining())
	return p
}

// CompletionEvent builds a "something finished" log line with a consistent
// shape: event name, duration and the fields added by the caller, in order.
// In pretty mode numeric fields get a human-readable "_h" companion.
type CompletionEvent struct {
	fields  zerolog.Context
	event   string
	elapsed time.Duration
}

// TargetComplete starts a completion event for one benchmark target.
func TargetComplete(log zerolog.Logger, elapsed time.Duration) *CompletionEvent {
	return &CompletionEvent{fields: log.With(), event: "target_completed", elapsed: elapsed}
}

// TargetStarted starts an event for a target about to be measured. Its
// duration is always zero.
func TargetStarted(log zerolog.Logger) *CompletionEvent {
	return &CompletionEvent{fields: log.With(), event: "target_started"}
}

// RunComplete starts a completion event for a whole run.
func RunComplete(log zerolog.Logger, elapsed time.Duration) *CompletionEvent {
	return &CompletionEvent{fields: log.With(), event: "run_completed", elapsed: elapsed}
}

func (ce *CompletionEvent) Str(key, val string) *CompletionEvent {
	ce.fields = ce.fields.Str(key, val)
	return ce
}

func (ce *CompletionEvent) Int(key string, val int) *CompletionEvent {
	ce.fields = ce.fields.Int(key, val)
	return ce
}

func (ce *CompletionEvent) Int64(key string, val int64) *CompletionEvent {
	ce.fields = ce.fields.Int64(key, val)
	return ce
}

// human adds the "_h" companion of key in pretty mode.
func (ce *CompletionEvent) human(key, val string) {
	if IsPrettyMode() {
		ce.fields = ce.fields.Str(key+"_h", val)
	}
}

// NsPerOp adds a per-operation time in nanoseconds.
func (ce *CompletionEvent) NsPerOp(key string, ns float64) *CompletionEvent {
	ce.fields = ce.fields.Float64(key, ns)
	ce.human(key, humanfmt.NsPerOp(ns))
	return ce
}

// Bytes adds a byte count.
func (ce *CompletionEvent) Bytes(key string, n int64) *CompletionEvent {
	ce.fields = ce.fields.Int64(key, n)
	ce.human(key, humanfmt.Bytes(n))
	return ce
}

// Count adds an iteration or item count.
func (ce *CompletionEvent) Count(key string, n int64) *CompletionEvent {
	ce.fields = ce.fields.Int64(key, n)
	ce.human(key, humanfmt.Count(n))
	return ce
}

// ProgressFromTracker adds completed, total and progress_pct, plus eta_ms
// while targets remain.
func (ce *CompletionEvent) ProgressFromTracker(pt *ProgressTracker) *CompletionEvent {
	p := pt.Snapshot()
	ce.fields = ce.fields.
		Int64("completed", p.Completed).
		Int64("total", p.Total).
		Float64("progress_pct", p.Pct())
	if p.ETA > 0 {
		ce.fields = ce.fields.Int64("eta_ms", p.ETA.Milliseconds())
		ce.human("eta", humanfmt.Duration(p.ETA))
	}
	return ce
}

// Log emits the event at info level.
func (ce *CompletionEvent) Log(msg string) {
	log := ce.fields.Logger()
	ce.emit(log.Info(), msg)
}

// LogDebug emits the event at debug level.
func (ce *CompletionEvent) LogDebug(msg string) {
	log := ce.fields.Logger()
	ce.emit(log.Debug(), msg)
}

func (ce *CompletionEvent) emit(e *zerolog.Event, msg string) {
	e = e.Str("event", ce.event).Int64("duration_ms", ce.elapsed.Milliseconds())
	if IsPrettyMode() {
		e = e.Str("duration_h", humanfmt.Duration(ce.elapsed))
	}
	e.Msg(msg)
}
