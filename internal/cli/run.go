package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eunmann/vecbench/internal/logctx"
	"github.com/eunmann/vecbench/pkg/fileutil"
	"github.com/eunmann/vecbench/pkg/logging"
	"github.com/eunmann/vecbench/pkg/report"
	"github.com/eunmann/vecbench/pkg/runner"
	"github.com/eunmann/vecbench/pkg/s3upload"
)

// newUploader builds the S3 client used by --s3. Replaced in tests.
var newUploader = s3upload.NewClient

// logOutput receives the structured logs of run and verify.
var logOutput io.Writer = os.Stderr

func newRunCmd(g *globalFlags) *cobra.Command {
	var set Config

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark targets and write a report",
		Long: `Run measures each selected target with testing.Benchmark, one after
another, and writes a report.

The report format is taken from --format, else from the extension of --out,
else a text table on stdout.

Examples:
  vecbench run --benchtime 100x
  vecbench run --filter 'remove large' --format json
  vecbench run --out results.csv --s3 s3://bucket/vecbench/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(g.configPath)
			if err != nil {
				return err
			}
			set.Debug, set.Human = g.debug, g.human
			cfg.applyFlags(cmd.Flags(), set)
			return runBench(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&set.Filter, "filter", "", "regular expression selecting target names")
	f.StringVar(&set.BenchTime, "benchtime", DefaultBenchTime, "time or iterations per target (1s, 100x); env "+BenchTimeEnv)
	f.StringVar(&set.Format, "format", "", "report format: "+formatNames())
	f.StringVar(&set.Out, "out", "", "write the report to this file instead of stdout")
	f.StringVar(&set.S3, "s3", "", "also upload the report to s3://bucket/key (key ending in / is a prefix)")
	f.BoolVar(&set.NoSettle, "no-settle", false, "skip the forced GC between targets")
	return cmd
}

func formatNames() string {
	names := make([]string, len(report.Formats))
	for i, f := range report.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

func runBench(cmd *cobra.Command, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.InitWriter(logOutput, cfg.Debug, cfg.Human)

	format, _ := cfg.OutputFormat()
	filter, _ := cfg.FilterRegexp()

	r, err := runner.New(runner.Options{
		Filter:    filter,
		BenchTime: cfg.BenchTime,
		NoSettle:  cfg.NoSettle,
	})
	if err != nil {
		return err
	}

	ctx := logctx.WithLogger(cmd.Context(), *logging.L())
	rep, err := r.Run(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, rep, format); err != nil {
		return fmt.Errorf("encode %s report: %w", format, err)
	}

	log := logctx.FromContext(ctx)
	switch {
	case cfg.Out != "":
		if err := fileutil.WriteAtomic(cfg.Out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Info().Str("path", cfg.Out).Str("format", string(format)).Msg("report written")
	case format != report.FormatParquet:
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if cfg.S3 != "" {
		return uploadReport(ctx, cfg.S3, rep.RunID, format, buf.Bytes())
	}
	return nil
}

func uploadReport(ctx context.Context, dest, runID string, format report.Format, body []byte) error {
	bucket, key, err := s3upload.ParseURI(dest)
	if err != nil {
		return err
	}
	key = s3upload.ObjectKey(key, runID, string(format))

	client, err := newUploader(ctx)
	if err != nil {
		return err
	}
	uri, err := client.Upload(ctx, bucket, key, format.ContentType(), body)
	if err != nil {
		return err
	}
	log := logctx.FromContext(ctx)
	log.Info().Str("uri", uri).Msg("report uploaded")
	return nil
}
