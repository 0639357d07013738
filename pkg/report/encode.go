package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/parquet-go/parquet-go"

	"github.com/eunmann/vecbench/pkg/humanfmt"
)

// BaselineVariant is the variant other results are compared against in the
// table's ratio column.
const BaselineVariant = "Vec"

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func writeTable(w io.Writer, r *Report) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TARGET", "ITERATIONS", "TIME/OP", "B/OP", "ALLOCS/OP", "VS "+BaselineVariant).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, res := range r.Results {
		ratio := "-"
		if base, ok := r.Baseline(res, BaselineVariant); ok {
			ratio = humanfmt.Ratio(res.NsPerOp, base.NsPerOp)
		}
		t.Row(
			res.Target,
			humanfmt.Count(int64(res.Iterations)),
			humanfmt.NsPerOp(res.NsPerOp),
			humanfmt.Bytes(res.BytesPerOp),
			strconv.FormatInt(res.AllocsPerOp, 10),
			ratio,
		)
	}

	_, err := fmt.Fprintf(w, "run %s  benchtime=%s  %s/%s  %d cpus  %s\n%s\n",
		r.RunID, r.BenchTime, r.Host.OS, r.Host.Arch, r.Host.CPUs, r.Host.GoVersion, t.String())
	return err
}

func writeJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

var csvHeader = []string{
	"run_id", "target", "variant", "workload", "size_class", "elements",
	"iterations", "ns_per_op", "bytes_per_op", "allocs_per_op",
}

func writeCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, res := range r.Results {
		rec := []string{
			r.RunID,
			res.Target,
			res.Variant,
			res.Workload,
			res.SizeClass,
			strconv.Itoa(res.Elements),
			strconv.Itoa(res.Iterations),
			strconv.FormatFloat(res.NsPerOp, 'f', 3, 64),
			strconv.FormatInt(res.BytesPerOp, 10),
			strconv.FormatInt(res.AllocsPerOp, 10),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %s: %w", res.Target, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ParquetRow is the Parquet schema of one result.
type ParquetRow struct {
	RunID       string  `parquet:"run_id"`
	StartedAtMs int64   `parquet:"started_at_ms"`
	Target      string  `parquet:"target"`
	Variant     string  `parquet:"variant"`
	Workload    string  `parquet:"workload"`
	SizeClass   string  `parquet:"size_class"`
	Elements    int64   `parquet:"elements"`
	Iterations  int64   `parquet:"iterations"`
	NsPerOp     float64 `parquet:"ns_per_op"`
	BytesPerOp  int64   `parquet:"bytes_per_op"`
	AllocsPerOp int64   `parquet:"allocs_per_op"`
	GoVersion   string  `parquet:"go_version"`
	Hostname    string  `parquet:"hostname"`
}

func writeParquet(w io.Writer, r *Report) error {
	rows := make([]ParquetRow, len(r.Results))
	for i, res := range r.Results {
		rows[i] = ParquetRow{
			RunID:       r.RunID,
			StartedAtMs: r.StartedAt.UnixMilli(),
			Target:      res.Target,
			Variant:     res.Variant,
			Workload:    res.Workload,
			SizeClass:   res.SizeClass,
			Elements:    int64(res.Elements),
			Iterations:  int64(res.Iterations),
			NsPerOp:     res.NsPerOp,
			BytesPerOp:  res.BytesPerOp,
			AllocsPerOp: res.AllocsPerOp,
			GoVersion:   r.Host.GoVersion,
			Hostname:    r.Host.Hostname,
		}
	}

	pw := parquet.NewGenericWriter[ParquetRow](w)
	if _, err := pw.Write(rows); err != nil {
		pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
