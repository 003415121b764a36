package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader handles loading configuration from files and command-line arguments.
type Loader struct{}

// ErrHelpRequested is returned when the user requests help via --help flag.
var ErrHelpRequested = errors.New("help requested")

// NewLoader creates a new configuration Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses command-line arguments and configuration files to produce a Config.
func (Loader) Load(args []string) (*Config, error) {
	cmd := newFlagCommand()
	if err := cmd.Flags().Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
		return nil, err
	}

	flagSet := cmd.Flags()
	if helpFlag := flagSet.Lookup("help"); helpFlag != nil {
		if wantsHelp, err := strconv.ParseBool(helpFlag.Value.String()); err == nil && wantsHelp {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
	}

	// If no arguments provided and no config file, show help/usage
	configPath := flagSet.Lookup("config").Value.String()
	if len(args) == 0 && configPath == "" {
		displayHelp(cmd)
		return nil, ErrHelpRequested
	}
	cfgViper := viper.New()
	if configPath != "" {
		cfgViper.SetConfigFile(configPath)
		if err := cfgViper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	settings := cfgViper.AllSettings()

	cfg := &Config{
		Suite:      Suite{Repeat: 1},
		Samples:    1,
		Format:     FormatText,
		LogLevel:   "info",
		ConfigFile: configPath,
		Tracing:    TracingConfig{Protocol: "grpc"},
	}

	if err := applyConfigSettings(cfg, settings); err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(cfg, flagSet); err != nil {
		return nil, err
	}

	cfg.Format = Format(strings.ToLower(string(cfg.Format)))
	cfg.Tracing.Protocol = strings.ToLower(cfg.Tracing.Protocol)
	cfg.Suite = defaultSuiteName(cfg.Suite)
	for i := range cfg.Benchmarks {
		cfg.Benchmarks[i] = defaultSuiteName(cfg.Benchmarks[i])
	}

	// Matching over both encodings is the default workload.
	if !cfg.UTF8 && !cfg.UTF16 && !cfg.Compile {
		cfg.UTF8, cfg.UTF16 = true, true
	}

	return cfg, nil
}

// defaultSuiteName names an unnamed suite after its patterns file.
func defaultSuiteName(s Suite) Suite {
	if strings.TrimSpace(s.Name) == "" && s.Patterns != "" {
		base := filepath.Base(s.Patterns)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s
}

// applyConfigSettings applies settings from a config file to the Config struct.
func applyConfigSettings(cfg *Config, settings map[string]any) error {
	if len(settings) == 0 {
		return nil
	}

	suite, err := buildSuite(settings, cfg.Suite)
	if err != nil {
		return err
	}
	cfg.Suite = suite

	if raw, ok := lookupSetting(settings, "benchmarks"); ok {
		benchmarks, err := parseBenchmarks(raw)
		if err != nil {
			return fmt.Errorf("benchmarks: %w", err)
		}
		cfg.Benchmarks = benchmarks
	}

	if raw, ok := lookupSetting(settings, "engines", "engine"); ok {
		engines, err := asStringSlice(raw)
		if err != nil {
			return fmt.Errorf("engines: %w", err)
		}
		cfg.Engines = engines
	}

	bools := []struct {
		dst  *bool
		keys []string
	}{
		{&cfg.Cold, []string{"cold"}},
		{&cfg.Parallel, []string{"parallel"}},
		{&cfg.UTF8, []string{"utf8"}},
		{&cfg.UTF16, []string{"utf16"}},
		{&cfg.Compile, []string{"compile"}},
		{&cfg.Append, []string{"append"}},
		{&cfg.Quiet, []string{"quiet"}},
	}
	for _, b := range bools {
		if raw, ok := lookupSetting(settings, b.keys...); ok {
			val, err := asBool(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", b.keys[0], err)
			}
			*b.dst = val
		}
	}

	ints := []struct {
		dst  *int
		keys []string
	}{
		{&cfg.Samples, []string{"samples"}},
		{&cfg.MaxSamples, []string{"max_samples"}},
		{&cfg.Workers, []string{"workers"}},
	}
	for _, n := range ints {
		if raw, ok := lookupSetting(settings, n.keys...); ok {
			val, err := asInt(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", n.keys[0], err)
			}
			*n.dst = val
		}
	}

	floats := []struct {
		dst  *float64
		keys []string
	}{
		{&cfg.StableRSD, []string{"stable_rsd"}},
		{&cfg.TrialRate, []string{"trial_rate"}},
	}
	for _, f := range floats {
		if raw, ok := lookupSetting(settings, f.keys...); ok {
			val, err := asFloat64(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", f.keys[0], err)
			}
			*f.dst = val
		}
	}

	if raw, ok := lookupSetting(settings, "min_time"); ok {
		dur, err := asDuration(raw)
		if err != nil {
			return fmt.Errorf("min_time: %w", err)
		}
		cfg.MinTime = dur
	}

	strs := []struct {
		dst  *string
		keys []string
	}{
		{&cfg.Output, []string{"output"}},
		{&cfg.HTMLOutput, []string{"html_output"}},
		{&cfg.LogLevel, []string{"log_level"}},
	}
	for _, s := range strs {
		if raw, ok := lookupSetting(settings, s.keys...); ok {
			val, err := asString(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", s.keys[0], err)
			}
			*s.dst = strings.TrimSpace(val)
		}
	}

	if raw, ok := lookupSetting(settings, "format"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("format: %w", err)
		}
		if val != "" {
			cfg.Format = Format(strings.TrimSpace(val))
		}
	}

	if raw, ok := lookupSetting(settings, "thresholds"); ok {
		thresholds, err := asStringSlice(raw)
		if err != nil {
			return fmt.Errorf("thresholds: %w", err)
		}
		cfg.Thresholds = thresholds
	}

	if raw, ok := lookupSetting(settings, "tracing"); ok {
		tracing, err := parseTracingConfig(raw, cfg.Tracing)
		if err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
		cfg.Tracing = tracing
	}

	return nil
}

// buildSuite reads the suite keys of settings on top of base.
func buildSuite(settings map[string]any, base Suite) (Suite, error) {
	s := base

	if raw, ok := lookupSetting(settings, "name"); ok {
		val, err := asString(raw)
		if err != nil {
			return Suite{}, fmt.Errorf("name: %w", err)
		}
		s.Name = strings.TrimSpace(val)
	}
	if raw, ok := lookupSetting(settings, "datasets", "dataset"); ok {
		val, err := asStringSlice(raw)
		if err != nil {
			return Suite{}, fmt.Errorf("datasets: %w", err)
		}
		s.Datasets = val
	}
	if raw, ok := lookupSetting(settings, "patterns"); ok {
		val, err := asString(raw)
		if err != nil {
			return Suite{}, fmt.Errorf("patterns: %w", err)
		}
		s.Patterns = strings.TrimSpace(val)
	}
	if raw, ok := lookupSetting(settings, "patterns_format"); ok {
		val, err := asString(raw)
		if err != nil {
			return Suite{}, fmt.Errorf("patterns_format: %w", err)
		}
		s.PatternsFormat = strings.TrimSpace(val)
	}
	if raw, ok := lookupSetting(settings, "patterns_field"); ok {
		val, err := asString(raw)
		if err != nil {
			return Suite{}, fmt.Errorf("patterns_field: %w", err)
		}
		s.PatternsField = strings.TrimSpace(val)
	}
	if raw, ok := lookupSetting(settings, "repeat"); ok {
		val, err := asInt(raw)
		if err != nil {
			return Suite{}, fmt.Errorf("repeat: %w", err)
		}
		s.Repeat = val
	}
	return s, nil
}

func parseBenchmarks(value any) ([]Suite, error) {
	items, err := asList(value)
	if err != nil {
		return nil, err
	}
	suites := make([]Suite, 0, len(items))
	for i, item := range items {
		settings, err := asMap(item)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		s, err := buildSuite(settings, Suite{Repeat: 1})
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		suites = append(suites, s)
	}
	return suites, nil
}

func parseTracingConfig(value any, base TracingConfig) (TracingConfig, error) {
	settings, err := asMap(value)
	if err != nil {
		return TracingConfig{}, err
	}
	t := base

	if raw, ok := lookupSetting(settings, "endpoint"); ok {
		if t.Endpoint, err = asString(raw); err != nil {
			return TracingConfig{}, fmt.Errorf("endpoint: %w", err)
		}
	}
	if raw, ok := lookupSetting(settings, "protocol"); ok {
		if t.Protocol, err = asString(raw); err != nil {
			return TracingConfig{}, fmt.Errorf("protocol: %w", err)
		}
	}
	if raw, ok := lookupSetting(settings, "service_name"); ok {
		if t.ServiceName, err = asString(raw); err != nil {
			return TracingConfig{}, fmt.Errorf("service_name: %w", err)
		}
	}
	if raw, ok := lookupSetting(settings, "sample_rate"); ok {
		if t.SampleRate, err = asFloat64(raw); err != nil {
			return TracingConfig{}, fmt.Errorf("sample_rate: %w", err)
		}
	}
	if raw, ok := lookupSetting(settings, "insecure"); ok {
		if t.Insecure, err = asBool(raw); err != nil {
			return TracingConfig{}, fmt.Errorf("insecure: %w", err)
		}
	}
	return t, nil
}
