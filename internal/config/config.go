package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/torosent/rxbench/internal/patterns"
)

// Format selects how measured metrics are written.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatBenchfmt Format = "benchfmt"
)

// Suite describes one benchmark: a dataset and the patterns run over it.
type Suite struct {
	Name           string   `mapstructure:"name"`
	Datasets       []string `mapstructure:"datasets"`
	Patterns       string   `mapstructure:"patterns"`
	PatternsFormat string   `mapstructure:"patterns_format"`
	PatternsField  string   `mapstructure:"patterns_field"`
	Repeat         int      `mapstructure:"repeat"`
}

// Config is the full set of run settings.
type Config struct {
	// Single benchmark defined by flags or top-level keys.
	Suite Suite
	// Benchmarks is the file-only suite list. When present it replaces Suite.
	Benchmarks []Suite

	Engines []string

	Cold     bool
	Parallel bool
	UTF8     bool
	UTF16    bool
	Compile  bool

	Samples    int
	MinTime    time.Duration
	StableRSD  float64
	MaxSamples int
	TrialRate  float64
	Workers    int

	Format     Format
	Output     string
	Append     bool
	HTMLOutput string
	Thresholds []string

	LogLevel   string
	Quiet      bool
	ConfigFile string

	Tracing TracingConfig
}

// Suites returns the benchmarks to run, in order.
func (c Config) Suites() []Suite {
	if len(c.Benchmarks) > 0 {
		return append([]Suite(nil), c.Benchmarks...)
	}
	return []Suite{c.Suite}
}

// SlogLevel maps LogLevel onto a slog level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (c Config) Validate() error {
	var issues []string

	if len(c.Benchmarks) > 0 && (len(c.Suite.Datasets) > 0 || c.Suite.Patterns != "") {
		issues = append(issues, "benchmarks and dataset/patterns are mutually exclusive")
	}
	for i, s := range c.Suites() {
		issues = append(issues, validateSuite(i, s)...)
	}

	if !c.UTF8 && !c.UTF16 && !c.Compile {
		issues = append(issues, "nothing to measure: enable at least one of utf8, utf16 or compile")
	}
	if c.Samples < 1 {
		issues = append(issues, "samples must be >= 1")
	}
	if c.MinTime < 0 {
		issues = append(issues, "min-time must be >= 0")
	}
	if c.StableRSD < 0 {
		issues = append(issues, "stable-rsd must be >= 0")
	}
	if c.MaxSamples < 0 {
		issues = append(issues, "max-samples must be >= 0")
	}
	if c.MaxSamples > 0 && c.MaxSamples < c.Samples {
		issues = append(issues, "max-samples must be >= samples")
	}
	if c.TrialRate < 0 {
		issues = append(issues, "trial-rate must be >= 0")
	}
	if c.Workers < 0 {
		issues = append(issues, "workers must be >= 0")
	}

	switch c.Format {
	case FormatText, FormatCSV, FormatJSON, FormatYAML, FormatBenchfmt:
	default:
		issues = append(issues, fmt.Sprintf("format must be one of text, csv, json, yaml, benchfmt (got %q)", c.Format))
	}
	if c.Append && strings.TrimSpace(c.Output) == "" {
		issues = append(issues, "append requires output")
	}
	if c.Quiet && c.Format == FormatText && c.Output == "" {
		fmt.Fprintln(os.Stderr, "WARNING: quiet only silences progress; the text report is still written to stdout.")
	}

	issues = append(issues, validateTracingConfig(c.Tracing)...)

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

func validateSuite(i int, s Suite) []string {
	var issues []string
	label := s.Name
	if label == "" {
		label = fmt.Sprintf("benchmarks[%d]", i)
	}
	if strings.TrimSpace(s.Name) == "" {
		issues = append(issues, fmt.Sprintf("%s: name is required", label))
	}
	if len(s.Datasets) == 0 {
		issues = append(issues, fmt.Sprintf("%s: at least one dataset is required (use --help for usage information)", label))
	}
	if strings.TrimSpace(s.Patterns) == "" {
		issues = append(issues, fmt.Sprintf("%s: patterns file is required", label))
	}
	if _, err := patterns.ParseFormat(s.PatternsFormat); err != nil {
		issues = append(issues, fmt.Sprintf("%s: %v", label, err))
	}
	if s.Repeat < 1 {
		issues = append(issues, fmt.Sprintf("%s: repeat must be >= 1", label))
	}
	return issues
}

func validateTracingConfig(t TracingConfig) []string {
	var issues []string
	switch strings.ToLower(t.Protocol) {
	case "", "grpc", "http":
	default:
		issues = append(issues, fmt.Sprintf("tracing protocol must be grpc or http (got %q)", t.Protocol))
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		issues = append(issues, "tracing sample_rate must be between 0.0 and 1.0")
	}
	return issues
}
