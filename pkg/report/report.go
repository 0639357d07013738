// Package report collects benchmark results and writes them as a text
// table, JSON, CSV or Parquet.
package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eunmann/vecbench/pkg/hostinfo"
)

// Result is the measurement of one benchmark target.
type Result struct {
	Target      string  `json:"target"`
	Variant     string  `json:"variant"`
	Workload    string  `json:"workload"`
	SizeClass   string  `json:"size_class"`
	Elements    int     `json:"elements"`
	Iterations  int     `json:"iterations"`
	NsPerOp     float64 `json:"ns_per_op"`
	BytesPerOp  int64   `json:"bytes_per_op"`
	AllocsPerOp int64   `json:"allocs_per_op"`
}

// Measure fills the timing fields of r from a testing.BenchmarkResult.
// NsPerOp keeps the fractional part that BenchmarkResult.NsPerOp drops.
func (r Result) Measure(br testing.BenchmarkResult) Result {
	r.Iterations = br.N
	if br.N > 0 {
		r.NsPerOp = float64(br.T.Nanoseconds()) / float64(br.N)
	}
	r.BytesPerOp = br.AllocedBytesPerOp()
	r.AllocsPerOp = br.AllocsPerOp()
	return r
}

// Report is the outcome of one run.
type Report struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	BenchTime string        `json:"bench_time"`
	Host      hostinfo.Info `json:"host"`
	Results   []Result      `json:"results"`
}

// New starts an empty report with a fresh run ID.
func New(benchTime string, host hostinfo.Info) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		BenchTime: benchTime,
		Host:      host,
	}
}

// Add appends a result.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Baseline returns the result for the same workload and size class measured
// on variant, if present.
func (r *Report) Baseline(res Result, variant string) (Result, bool) {
	for _, b := range r.Results {
		if b.Variant == variant && b.Workload == res.Workload && b.SizeClass == res.SizeClass {
			return b, true
		}
	}
	return Result{}, false
}

// Format is an output encoding.
type Format string

const (
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the supported formats.
var Formats = []Format{FormatTable, FormatJSON, FormatCSV, FormatParquet}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatForPath picks a format from a file extension, falling back to table.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	case ".parquet":
		return FormatParquet
	default:
		return FormatTable
	}
}

// ContentType returns the MIME type used when uploading a report.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatParquet:
		return "application/vnd.apache.parquet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Write encodes r to w in format f.
func Write(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatTable:
		return writeTable(w, r)
	case FormatJSON:
		return writeJSON(w, r)
	case FormatCSV:
		return writeCSV(w, r)
	case FormatParquet:
		return writeParquet(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}
