package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags registers all CLI flags to a cobra command.
func RegisterFlags(cmd *cobra.Command) {
	configureFlags(cmd.Flags())
}

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rxbench",
		Short:         "Benchmark regular expression engines over text datasets",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Benchmark definition flags
	flags.String("name", "", "Benchmark name (defaults to the patterns file name)")
	flags.StringSlice("dataset", nil, "Dataset file or directory, read recursively (repeatable)")
	flags.String("patterns", "", "Path to the patterns file")
	flags.String("patterns-format", "", "Patterns file format: 'lines', 'csv' or 'json' (default lines)")
	flags.String("patterns-field", "", "CSV column or JSON path holding the patterns")
	flags.Int("repeat", 1, "Concatenate the dataset with itself this many times")
	flags.StringSlice("engine", nil, "Engine to measure (repeatable, default all)")

	// Section flags
	flags.Bool("cold", false, "Also measure cold start compilation and matching")
	flags.Bool("parallel", false, "Also measure parallel matching over the dataset files")
	flags.Bool("utf8", false, "Measure matching over UTF-8 input")
	flags.Bool("utf16", false, "Measure matching over UTF-16 input")
	flags.Bool("compile", false, "Measure compilation time")

	// Sampling flags
	flags.IntP("samples", "n", 1, "Minimum number of observations per cell")
	flags.Duration("min-time", 0, "Keep sampling each cell until its observations total this duration")
	flags.Float64("stable-rsd", 0, "Keep sampling until stddev/mean falls to this value (0 disables)")
	flags.Int("max-samples", 0, "Upper bound on observations per cell (0 means unbounded)")
	flags.Float64("trial-rate", 0, "Trials per second limit (0 means unpaced)")
	flags.IntP("workers", "w", 0, "Workers for parallel matching (0 means GOMAXPROCS)")

	// Output flags
	flags.StringP("format", "f", string(FormatText), "Report format: text, csv, json, yaml or benchfmt")
	flags.StringP("output", "o", "", "Write the report to this file instead of stdout")
	flags.Bool("append", false, "Append to the output file under an exclusive lock")
	flags.String("html-output", "", "Generate HTML report to the specified file path")
	flags.StringSlice("threshold", nil, "Performance thresholds (repeatable, e.g., 'UTF-8 hot@re2:p99 < 50ms')")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.BoolP("quiet", "q", false, "Suppress progress output")
	flags.String("config", "", "Path to configuration file (JSON or YAML)")

	// Tracing flags
	flags.String("tracing-endpoint", "", "OTLP endpoint for trace export")
	flags.String("tracing-protocol", "grpc", "OTLP protocol: 'grpc' or 'http'")
	flags.Bool("tracing-insecure", false, "Disable TLS for the OTLP exporter")
	flags.String("tracing-service-name", "", "Service name reported with spans")
	flags.Float64("tracing-sample-rate", 0, "Fraction of benchmark traces to export (0 or 1 exports all)")
}

// displayHelp prints the help message for a command.
func displayHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\nUsage: %s\n\nFlags:\n", cmd.Short, cmd.UseLine())
	fs := cmd.Flags()
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// applyFlagOverrides applies command-line flag values to the config, overriding
// values from the config file.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	str := func(name string, dst *string) {
		if err != nil || !fs.Changed(name) {
			return
		}
		var val string
		if val, err = fs.GetString(name); err == nil {
			*dst = strings.TrimSpace(val)
		}
	}
	strs := func(name string, dst *[]string) {
		if err != nil || !fs.Changed(name) {
			return
		}
		var val []string
		if val, err = fs.GetStringSlice(name); err == nil {
			*dst = val
		}
	}
	boolean := func(name string, dst *bool) {
		if err != nil || !fs.Changed(name) {
			return
		}
		var val bool
		if val, err = fs.GetBool(name); err == nil {
			*dst = val
		}
	}
	integer := func(name string, dst *int) {
		if err != nil || !fs.Changed(name) {
			return
		}
		var val int
		if val, err = fs.GetInt(name); err == nil {
			*dst = val
		}
	}
	float := func(name string, dst *float64) {
		if err != nil || !fs.Changed(name) {
			return
		}
		var val float64
		if val, err = fs.GetFloat64(name); err == nil {
			*dst = val
		}
	}

	str("name", &cfg.Suite.Name)
	strs("dataset", &cfg.Suite.Datasets)
	str("patterns", &cfg.Suite.Patterns)
	str("patterns-format", &cfg.Suite.PatternsFormat)
	str("patterns-field", &cfg.Suite.PatternsField)
	integer("repeat", &cfg.Suite.Repeat)
	strs("engine", &cfg.Engines)

	boolean("cold", &cfg.Cold)
	boolean("parallel", &cfg.Parallel)
	boolean("utf8", &cfg.UTF8)
	boolean("utf16", &cfg.UTF16)
	boolean("compile", &cfg.Compile)

	integer("samples", &cfg.Samples)
	if err == nil && fs.Changed("min-time") {
		cfg.MinTime, err = fs.GetDuration("min-time")
	}
	float("stable-rsd", &cfg.StableRSD)
	integer("max-samples", &cfg.MaxSamples)
	float("trial-rate", &cfg.TrialRate)
	integer("workers", &cfg.Workers)

	var format string
	str("format", &format)
	if format != "" {
		cfg.Format = Format(strings.ToLower(format))
	}
	str("output", &cfg.Output)
	boolean("append", &cfg.Append)
	str("html-output", &cfg.HTMLOutput)
	strs("threshold", &cfg.Thresholds)
	str("log-level", &cfg.LogLevel)
	boolean("quiet", &cfg.Quiet)

	str("tracing-endpoint", &cfg.Tracing.Endpoint)
	str("tracing-protocol", &cfg.Tracing.Protocol)
	boolean("tracing-insecure", &cfg.Tracing.Insecure)
	str("tracing-service-name", &cfg.Tracing.ServiceName)
	float("tracing-sample-rate", &cfg.Tracing.SampleRate)

	return err
}
