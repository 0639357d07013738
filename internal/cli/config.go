package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/eunmann/vecbench/pkg/report"
)

// BenchTimeEnv overrides the default per-target bench time.
const BenchTimeEnv = "VECBENCH_BENCHTIME"

// DefaultBenchTime matches the `go test` default.
const DefaultBenchTime = "1s"

// Config holds the settings of `vecbench run`. Every field can come from
// the YAML config file; command-line flags take precedence.
type Config struct {
	Filter    string `yaml:"filter"`
	BenchTime string `yaml:"benchtime"`
	Format    string `yaml:"format"`
	Out       string `yaml:"out"`
	S3        string `yaml:"s3"`
	NoSettle  bool   `yaml:"no_settle"`
	Debug     bool   `yaml:"debug"`
	Human     bool   `yaml:"human"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{BenchTime: DefaultBenchTime}
}

// LoadConfig merges, in increasing precedence, the defaults, the config file
// at path (if non-empty) and the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	loadConfigFromEnv(&cfg)
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadConfigFromEnv(cfg *Config) {
	if v := os.Getenv(BenchTimeEnv); v != "" {
		cfg.BenchTime = v
	}
}

// applyFlags copies the values of flags the user set explicitly.
func (c *Config) applyFlags(fs *pflag.FlagSet, set Config) {
	if fs.Changed("filter") {
		c.Filter = set.Filter
	}
	if fs.Changed("benchtime") {
		c.BenchTime = set.BenchTime
	}
	if fs.Changed("format") {
		c.Format = set.Format
	}
	if fs.Changed("out") {
		c.Out = set.Out
	}
	if fs.Changed("s3") {
		c.S3 = set.S3
	}
	if fs.Changed("no-settle") {
		c.NoSettle = set.NoSettle
	}
	if fs.Changed("debug") {
		c.Debug = set.Debug
	}
	if fs.Changed("human") {
		c.Human = set.Human
	}
}

// OutputFormat resolves the report format: the explicit format if set,
// otherwise the extension of Out, otherwise a text table.
func (c Config) OutputFormat() (report.Format, error) {
	if c.Format != "" {
		return report.ParseFormat(c.Format)
	}
	if c.Out != "" {
		return report.FormatForPath(c.Out), nil
	}
	return report.FormatTable, nil
}

// FilterRegexp compiles Filter, returning nil when it is empty.
func (c Config) FilterRegexp() (*regexp.Regexp, error) {
	if c.Filter == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.Filter)
	if err != nil {
		return nil, fmt.Errorf("invalid --filter: %w", err)
	}
	return re, nil
}

// Validate checks the settings that can be checked before a run starts.
func (c Config) Validate() error {
	if c.BenchTime == "" {
		return errors.New("benchtime must not be empty")
	}
	f, err := c.OutputFormat()
	if err != nil {
		return err
	}
	if f == report.FormatParquet && c.Out == "" && c.S3 == "" {
		return errors.New("parquet output requires --out or --s3")
	}
	if _, err := c.FilterRegexp(); err != nil {
		return err
	}
	return nil
}
